package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sandevgo/archie/internal/config"
)

// Ollama talks to the native /api/generate endpoint.
type Ollama struct {
	baseProvider
	temperature float64
	topP        float64
}

func NewOllama(cfg *config.GenerationConfig) *Ollama {
	return &Ollama{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout),
		temperature:  cfg.Temperature,
		topP:         cfg.TopP,
	}
}

func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": o.temperature,
			"top_p":       o.topP,
		},
	}

	headers := make(map[string]string)
	if o.apiKey != "" {
		headers["Authorization"] = "Bearer " + o.apiKey
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/api/generate", payload, headers)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &GenerationError{Err: fmt.Errorf("http %d: %s", resp.StatusCode, string(data))}
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", &GenerationError{Err: fmt.Errorf("decode: %w", err)}
	}
	return result.Response, nil
}
