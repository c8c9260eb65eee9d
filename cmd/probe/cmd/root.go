package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/voltroute/backend/internal/probe"
)

var (
	baseURL string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check the liveness and readiness of a running server",
	Long: `probe queries the health endpoints of a running server and exits
non-zero when it is not healthy. It is meant for container HEALTHCHECK
instructions in images that ship without curl.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://127.0.0.1:8080", "base URL of the server")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Second, "request timeout")

	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(readyCmd)
}

func newClient() *probe.Client {
	return probe.NewClient(baseURL, timeout)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
