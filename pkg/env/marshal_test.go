package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEnv(t *testing.T) {
	type cfg struct {
		URL      string  `env:"ARCHIE_GEN_BASE_URL"`
		Model    string  `env:"ARCHIE_GEN_MODEL,required,notEmpty"`
		Debug    bool    `env:"ARCHIE_DEBUG"`
		Topk     int     `env:"ARCHIE_IMAGE_TOP_K"`
		Thresh   float64 `env:"ARCHIE_IMAGE_THRESHOLD"`
		untagged string
		NoTag    string
	}

	c := &cfg{
		URL:    "http://localhost:11434",
		Model:  "llama3.2:latest",
		Debug:  true,
		Topk:   2,
		Thresh: 0.89,
	}

	out, err := MarshalEnv(c)
	require.NoError(t, err)

	assert.Contains(t, out, "ARCHIE_GEN_BASE_URL=http://localhost:11434\n")
	assert.Contains(t, out, "ARCHIE_GEN_MODEL=llama3.2:latest\n")
	assert.Contains(t, out, "ARCHIE_DEBUG=true\n")
	assert.Contains(t, out, "ARCHIE_IMAGE_TOP_K=2\n")
	assert.Contains(t, out, "ARCHIE_IMAGE_THRESHOLD=0.89\n")
	assert.NotContains(t, out, "untagged")
}

func TestMarshalEnv_OmitsZeroValues(t *testing.T) {
	type cfg struct {
		URL   string `env:"ARCHIE_GEN_BASE_URL"`
		Model string `env:"ARCHIE_GEN_MODEL"`
	}

	out, err := MarshalEnv(&cfg{Model: "llama3.2:latest"})
	require.NoError(t, err)

	assert.Equal(t, "ARCHIE_GEN_MODEL=llama3.2:latest\n", out)
}
