package cmd

import (
	"github.com/spf13/cobra"
)

var readyPath string

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "Check the readiness endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newClient().Ready(cmd.Context(), readyPath)
		if r != nil {
			for _, c := range r.Checks {
				if c.Error != "" {
					cmd.Printf("%s: %s (%s)\n", c.Name, c.Status, c.Error)
					continue
				}
				cmd.Printf("%s: %s\n", c.Name, c.Status)
			}
		}
		if err != nil {
			return err
		}
		cmd.Printf("ready: %s\n", r.Status)
		return nil
	},
}

func init() {
	readyCmd.Flags().StringVar(&readyPath, "path", "/ready/", "readiness path")
}
