package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/gptmcp/internal/config"
	"github.com/sandevgo/gptmcp/pkg/env"
	"github.com/sandevgo/gptmcp/pkg/log"
	"github.com/spf13/cobra"
)

var envWrite bool

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the effective configuration as .env",
	Long: `Prints the configuration after defaults, the .env file and the environment have
been merged. The API key is masked unless --write is given, which stores the
unmasked configuration in the .env file (GPTMCP_ENV_FILE, default ./.env).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		serverCfg, err := config.ParseServerConfig()
		if err != nil {
			return err
		}

		shown := cfg.Masked()
		if envWrite {
			shown = cfg
		}

		openaiEnv, err := env.MarshalEnv(shown)
		if err != nil {
			return err
		}
		serverEnv, err := env.MarshalEnv(serverCfg)
		if err != nil {
			return err
		}
		content := openaiEnv + serverEnv

		if !envWrite {
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		}

		path := config.GetEnvFilePath()
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.FromCtx(ctx).Info().Str("path", path).Msg("configuration written")
		return nil
	},
}

func init() {
	envCmd.Flags().BoolVarP(&envWrite, "write", "w", false, "write the configuration to the .env file")
	rootCmd.AddCommand(envCmd)
}
