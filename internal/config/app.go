package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/archie/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"ARCHIE_RUNTIME_PATH" envDefault:".archie"`

	// Transport flags
	HTTPAddr       string `env:"ARCHIE_HTTP_ADDR" envDefault:":8000"`
	EnableHTTP     bool   `env:"ARCHIE_ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool   `env:"ARCHIE_ENABLE_TELEGRAM" envDefault:"false"`
	EnableMCP      bool   `env:"ARCHIE_ENABLE_MCP" envDefault:"false"`

	// Prompt composition uses only the trailing window of a conversation;
	// the store itself keeps the full history.
	HistoryWindow int `env:"ARCHIE_HISTORY_WINDOW" envDefault:"6"`

	// When set, document citations render as links under this base URL.
	FileBaseURL string `env:"ARCHIE_FILE_BASE_URL"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "archie.db")
}

func (c AppConfig) GetDataPath() string {
	return filepath.Join(c.RuntimePath, "data")
}
