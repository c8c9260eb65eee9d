package cmd

import (
	"github.com/spf13/cobra"
)

var livePath string

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Check the liveness endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newClient().Live(cmd.Context(), livePath)
		if err != nil {
			return err
		}
		cmd.Printf("live: %s\n", s.Status)
		return nil
	},
}

func init() {
	liveCmd.Flags().StringVar(&livePath, "path", "/health/", "liveness path")
}
