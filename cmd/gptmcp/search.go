package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/gptmcp/internal/core"
	"github.com/sandevgo/gptmcp/internal/service/ui"
	"github.com/spf13/cobra"
)

var searchFlags struct {
	model       string
	effort      string
	verbosity   string
	contextSize string
	noWeb       bool
}

var searchCmd = &cobra.Command{
	Use:   "search <prompt>",
	Short: "Run advanced_search once and print the result",
	Args:  cobra.MinimumNArgs(1),
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

		res, err := svc.AdvancedSearch(ctx, core.SearchRequest{
			Prompt:            strings.Join(args, " "),
			Model:             searchFlags.model,
			ReasoningEffort:   core.Effort(searchFlags.effort),
			Verbosity:         core.Verbosity(searchFlags.verbosity),
			SearchContextSize: core.SearchContextSize(searchFlags.contextSize),
			EnableWebSearch:   !searchFlags.noWeb,
		})
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.ErrorStyle.Render(svc.Formatter().Error("advanced search", err)))
			return errReported
		}

		fmt.Fprintln(cmd.OutOrStdout(), svc.Formatter().Result(res))
		return nil
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&searchFlags.model, "model", "m", "", "model id (default from OPENAI_MODEL)")
	f.StringVarP(&searchFlags.effort, "effort", "e", "", "reasoning effort: "+strings.Join(core.Values(core.Efforts), "|"))
	f.StringVar(&searchFlags.verbosity, "verbosity", "", "answer verbosity: "+strings.Join(core.Values(core.Verbosities), "|"))
	f.StringVar(&searchFlags.contextSize, "context-size", "", "web search context size: "+strings.Join(core.Values(core.SearchContextSizes), "|"))
	f.BoolVar(&searchFlags.noWeb, "no-web-search", false, "disable web search")

	rootCmd.AddCommand(searchCmd)
}
