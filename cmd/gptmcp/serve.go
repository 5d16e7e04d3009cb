package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/gptmcp/internal/core"
	"github.com/sandevgo/gptmcp/pkg/log"
	"github.com/sandevgo/gptmcp/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Serves the list_models and advanced_search tools over the transport chosen by
MCP_TRANSPORT: stdio (default), http (streamable HTTP) or sse.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger setup
	var flushLog func()
	ctx, flushLog = setupLogger(ctx)
	defer flushLog()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	logger := log.FromCtx(ctx)
	logger.Info().Str("version", core.AppVersion).Msgf("starting %s", core.AppName)

	services := NewServices(ctx, cfg)

	srv.StartServices(ctx, services)
	srv.StopOnFinish(ctx, stop, services)

	// Wait for a signal or for the stdio client to go away
	srv.ShutdownServices(ctx, services)
	logger.Info().Msgf("%s has been shut down gracefully", core.AppName)

	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
