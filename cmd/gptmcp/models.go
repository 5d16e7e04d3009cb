package main

import (
	"fmt"

	"github.com/sandevgo/gptmcp/internal/service/ui"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Print what list_models returns",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		svc := NewSearchService(ctx, cfg)

		text, err := svc.ListModels(ctx)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.ErrorStyle.Render(svc.Formatter().Error("list models", err)))
			return errReported
		}

		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
