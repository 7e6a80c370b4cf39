package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tintd/tintd/dbusapi"
)

var (
	setBrightness float64
	setFilter     string
	setIntensity  float64
)

var setCmd = &cobra.Command{
	Use:   "set [display]",
	Short: "Adjust brightness and filter, for one display or all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dbusapi.Dial()
		if err != nil {
			return err
		}
		defer client.Close()
		if len(args) == 1 {
			return client.Set(args[0], setBrightness, setFilter, setIntensity)
		}
		return client.SetAll(setBrightness, setFilter, setIntensity)
	},
}

func init() {
	setCmd.Flags().Float64VarP(&setBrightness, "brightness", "b", 1, "brightness in [0.05, 1]")
	setCmd.Flags().StringVarP(&setFilter, "filter", "f", "none", "filter color (none, orange, red, green, blue)")
	setCmd.Flags().Float64VarP(&setIntensity, "intensity", "i", 0, "filter intensity in [0, 1]")
}
