package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tintd/tintd/dbusapi"
)

var resetCmd = &cobra.Command{
	Use:   "reset [display]",
	Short: "Restore the captured baseline, for one display or all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dbusapi.Dial()
		if err != nil {
			return err
		}
		defer client.Close()
		if len(args) == 1 {
			return client.Reset(args[0])
		}
		return client.ResetAll()
	},
}
