package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvMapOmitsUnsetValues(t *testing.T) {
	s := NewInstallState()
	s.Provider = "ollama"
	s.GenerationURL = "http://localhost:11434"
	s.GenerationModel = "llama3.2:latest"
	s.EmbeddingModel = "nomic-embed-text"

	vars := s.EnvMap()

	assert.Equal(t, map[string]string{
		"ARCHIE_GEN_PROVIDER":   "ollama",
		"ARCHIE_GEN_BASE_URL":   "http://localhost:11434",
		"ARCHIE_GEN_MODEL":      "llama3.2:latest",
		"ARCHIE_EMBED_MODEL":    "nomic-embed-text",
		"ARCHIE_EMBED_BASE_URL": "http://localhost:11434",
	}, vars)
	assert.NotContains(t, vars, "ARCHIE_GEN_API_KEY")
}

func TestEnvMapIncludesAPIKey(t *testing.T) {
	s := NewInstallState()
	s.Provider = "openai"
	s.APIKey = "sk-test"

	vars := s.EnvMap()

	assert.Equal(t, "sk-test", vars["ARCHIE_GEN_API_KEY"])
}
