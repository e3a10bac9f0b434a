package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/archie/pkg/log"
)

type GenerationConfig struct {
	Provider    string        `env:"ARCHIE_GEN_PROVIDER" envDefault:"ollama"`
	BaseURL     string        `env:"ARCHIE_GEN_BASE_URL" envDefault:"http://localhost:11434"`
	APIKey      string        `env:"ARCHIE_GEN_API_KEY"`
	Model       string        `env:"ARCHIE_GEN_MODEL" envDefault:"llama3.2:latest"`
	Temperature float64       `env:"ARCHIE_GEN_TEMPERATURE" envDefault:"0.7"`
	TopP        float64       `env:"ARCHIE_GEN_TOP_P" envDefault:"0.9"`
	Timeout     time.Duration `env:"ARCHIE_GEN_TIMEOUT" envDefault:"60s"`
}

func NewGenerationConfig(ctx context.Context) *GenerationConfig {
	c := &GenerationConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Generation config")
	}
	return c
}
