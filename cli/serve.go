package cli

import (
	"github.com/spf13/cobra"
	"github.com/usi-samples/usi-client-go/controllers"
	"github.com/usi-samples/usi-client-go/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the operations as a JSON gateway",
	Long: `serve exposes every operation over HTTP on USI_PORT, along with
/status and /metrics. Requests without a body run against the samples.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Progress lines go to stderr, results go to the HTTP client.
		client, samples, err := session(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return server.Launch(controllers.NewUsiApi(client, samples))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
