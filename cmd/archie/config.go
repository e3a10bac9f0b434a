package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandevgo/archie/internal/config"
	"github.com/sandevgo/archie/pkg/env"
)

var configCmd = &cobra.Command{
	Use:          "config",
	Short:        "Print the effective configuration in .env form",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		sections := []any{
			config.NewAppConfig(ctx),
			config.NewGenerationConfig(ctx),
			config.NewEmbeddingConfig(ctx),
			config.NewRetrievalConfig(ctx),
		}
		for _, section := range sections {
			out, err := env.MarshalEnv(section)
			if err != nil {
				return err
			}
			fmt.Print(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
