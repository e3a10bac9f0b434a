package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/archie/internal/config"
	"github.com/sandevgo/archie/internal/providers/embedding"
	"github.com/sandevgo/archie/internal/providers/llm"
	"github.com/sandevgo/archie/internal/service/advisor"
	"github.com/sandevgo/archie/internal/service/conversation"
	"github.com/sandevgo/archie/internal/service/diagram"
	"github.com/sandevgo/archie/internal/service/prompt"
	"github.com/sandevgo/archie/internal/service/relevance"
	"github.com/sandevgo/archie/internal/service/retrieval"
	"github.com/sandevgo/archie/internal/storage/sqlite"
	"github.com/sandevgo/archie/internal/transport/httpapi"
	"github.com/sandevgo/archie/internal/transport/mcpsrv"
	"github.com/sandevgo/archie/internal/transport/telegram"
	"github.com/sandevgo/archie/pkg/log"
	"github.com/sandevgo/archie/pkg/retry"
	"github.com/sandevgo/archie/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	genCfg := config.NewGenerationConfig(ctx)
	embedCfg := config.NewEmbeddingConfig(ctx)
	retrievalCfg := config.NewRetrievalConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	documents := sqlite.NewDocumentsRepo(db)
	images := sqlite.NewImagesRepo(db)

	// 3. Providers
	generator, err := llm.NewProvider(ctx, genCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize generation provider")
	}

	embedder := embedding.NewOllama(embedCfg)
	waitForEmbedder(ctx, embedder)

	// 4. Advisory pipeline
	adv := advisor.New(
		relevance.NewClassifier(),
		retrieval.NewRetriever(embedder, documents),
		retrieval.NewCitationFormatter(appCfg.FileBaseURL),
		conversation.NewStore(),
		prompt.NewComposer(appCfg.HistoryWindow),
		generator,
		diagram.NewMatcher(embedder, images),
		retrievalCfg,
	)

	// 5. Transports
	transports, err := initTransports(ctx, appCfg, adv)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

// waitForEmbedder blocks startup until the embedding backend answers.
// Startup is the one place where retrying is allowed.
func waitForEmbedder(ctx context.Context, embedder *embedding.Ollama) {
	retrier := retry.NewDefaultRetrier()
	if err := retrier.Do(ctx, func() error { return embedder.Ping(ctx) }); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("embedding backend unreachable")
	}
}

func initTransports(ctx context.Context, cfg *config.AppConfig, adv *advisor.Advisor) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableHTTP {
		services = append(services, httpapi.NewServer(cfg.HTTPAddr, adv))
	}

	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, adv)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.EnableMCP {
		services = append(services, mcpsrv.NewServer(adv))
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
