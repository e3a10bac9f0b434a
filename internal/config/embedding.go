package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/archie/pkg/log"
)

type EmbeddingConfig struct {
	BaseURL string        `env:"ARCHIE_EMBED_BASE_URL" envDefault:"http://localhost:11434"`
	Model   string        `env:"ARCHIE_EMBED_MODEL" envDefault:"nomic-embed-text"`
	Timeout time.Duration `env:"ARCHIE_EMBED_TIMEOUT" envDefault:"30s"`
}

func NewEmbeddingConfig(ctx context.Context) *EmbeddingConfig {
	c := &EmbeddingConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Embedding config")
	}
	return c
}
