package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/getmockd/stubservice/pkg/logging"
	"github.com/getmockd/stubservice/pkg/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stub server",
	Long: `Start the stub server and block until interrupted.

Examples:
  # Serve ./stubs on port 3000
  stubservice serve

  # Serve another fixture directory on port 8080 with JSON logs
  stubservice serve --stub-dir testdata/stubs -p 8080 --log-format json

  # Reload-friendly development mode
  stubservice serve --watch --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logging.FromStrings(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	srv := server.New(cfg, server.WithLogger(log))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
