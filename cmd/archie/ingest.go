package main

import (
	"github.com/spf13/cobra"

	"github.com/sandevgo/archie/internal/config"
	"github.com/sandevgo/archie/internal/ingest"
	"github.com/sandevgo/archie/internal/providers/embedding"
	"github.com/sandevgo/archie/internal/storage/sqlite"
	"github.com/sandevgo/archie/pkg/log"
)

var imagesManifest string

var ingestCmd = &cobra.Command{
	Use:   "ingest [data-dir]",
	Short: "Index reference documents and diagrams",
	Long: `Chunks and embeds markdown and text files from the data directory into
the document index. With --images, indexes diagram descriptions from a
JSON manifest instead.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg := config.NewAppConfig(ctx)
		embedCfg := config.NewEmbeddingConfig(ctx)

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		ingester := ingest.NewIngester(
			embedding.NewOllama(embedCfg),
			sqlite.NewDocumentsRepo(db),
			sqlite.NewImagesRepo(db),
		)

		if imagesManifest != "" {
			n, err := ingester.Images(ctx, imagesManifest)
			if err != nil {
				return err
			}
			logger.Info().Int("count", n).Msg("diagram descriptions indexed")
			return nil
		}

		dataDir := appCfg.GetDataPath()
		if len(args) > 0 {
			dataDir = args[0]
		}

		n, err := ingester.Documents(ctx, dataDir)
		if err != nil {
			return err
		}
		logger.Info().Int("chunks", n).Str("dir", dataDir).Msg("documents indexed")
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&imagesManifest, "images", "", "index diagram descriptions from a JSON manifest")
	rootCmd.AddCommand(ingestCmd)
}
