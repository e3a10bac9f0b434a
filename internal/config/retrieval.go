package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/archie/pkg/log"
)

type RetrievalConfig struct {
	TopK int `env:"ARCHIE_RETRIEVAL_TOP_K" envDefault:"5"`

	// Diagram matching thresholds. The chat path is stricter than the
	// report/ADR path, which searches on the preference name alone.
	ImageThreshold    float64 `env:"ARCHIE_IMAGE_THRESHOLD" envDefault:"0.89"`
	ADRImageThreshold float64 `env:"ARCHIE_ADR_IMAGE_THRESHOLD" envDefault:"0.85"`
	ImageTopK         int     `env:"ARCHIE_IMAGE_TOP_K" envDefault:"2"`
}

func NewRetrievalConfig(ctx context.Context) *RetrievalConfig {
	c := &RetrievalConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Retrieval config")
	}
	return c
}
