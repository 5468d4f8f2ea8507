package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iksnae/question-digest/internal/di"
	"github.com/spf13/cobra"
)

var (
	serveHost    string
	servePort    int
	serveSiteDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the viewer, the published dataset and the upload API",
	Long: `Starts the HTTP server.

Routes:
  GET  /data/index.json              Published index (404 until a build ran)
  GET  /data/day-{day}.json          Published day file
  POST /api/local                    Upload an export, returns a dataset id
  GET  /api/local/{id}/index.json    Index of an uploaded dataset
  GET  /api/local/{id}/day-{day}.json Day file of an uploaded dataset
  GET  /health                       Liveness and dataset status
  GET  /metrics                      Prometheus metrics

Everything else is served from the site directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := di.InitServer(conf)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Address to listen on")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveSiteDir, "site", "site", "Directory with the static viewer")
}
