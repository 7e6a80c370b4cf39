package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tintd/tintd/dbusapi"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current adjustment of every display",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dbusapi.Dial()
		if err != nil {
			return err
		}
		defer client.Close()

		names, err := client.ListDisplays()
		if err != nil {
			return err
		}
		for _, name := range names {
			brightness, filter, intensity, err := client.Get(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-12s brightness %3.0f%%  filter %s", name, brightness*100, filter)
			if filter != "none" {
				fmt.Printf(" %3.0f%%", intensity*100)
			}
			fmt.Println()
		}

		at, kind, ok, err := client.NextTransition()
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("next %s %s\n", kind, humanize.Time(at))
		}
		return nil
	},
}
