// Package openai fetches model metadata from the OpenAI models API, falling
// back to a curated table when no API key is configured or the call fails.
package openai

import (
	"context"
	"os"
	"strings"

	"github.com/modeldex/modeldex/internal/sources"
	"github.com/modeldex/modeldex/internal/transport"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/logging"
)

const modelsURL = "https://api.openai.com/v1/models"

func init() {
	sources.Register("openai", func() sources.Source { return NewClient() })
}

// Response represents the OpenAI models list response.
type Response struct {
	Object string      `json:"object"`
	Data   []ModelData `json:"data"`
}

// ModelData represents a model in the OpenAI API response.
type ModelData struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// Client implements the sources.Source interface for OpenAI.
type Client struct {
	transport *transport.Client
	hasKey    bool
	baseURL   string
}

// NewClient creates a new OpenAI client authenticated from OPENAI_API_KEY.
func NewClient() *Client {
	apiKey := os.Getenv("OPENAI_API_KEY")
	return &Client{
		transport: transport.New(&transport.BearerAuth{}, apiKey),
		hasKey:    apiKey != "",
		baseURL:   modelsURL,
	}
}

// Provider implements sources.Source.
func (c *Client) Provider() string { return "openai" }

// DefaultModel implements sources.Source.
func (c *Client) DefaultModel() string { return "gpt-4o-mini" }

// Fetch returns OpenAI model records. Without an API key the curated table is
// returned as-is; with one, chat models discovered via the API are added to
// the table with a context window guessed from the model ID.
func (c *Client) Fetch(ctx context.Context) (map[string]any, error) {
	records := staticModels()

	if !c.hasKey {
		logging.Debug().Str("provider", "openai").Msg("No API key, using curated models")
		return records, nil
	}

	resp, err := c.transport.Get(ctx, c.baseURL)
	if err != nil {
		logging.Warn().Err(err).Str("provider", "openai").Msg("Models request failed, using curated models")
		return records, nil
	}

	var result Response
	if err := transport.DecodeResponse(resp, &result); err != nil {
		logging.Warn().Err(err).Str("provider", "openai").Msg("Models response invalid, using curated models")
		return records, nil
	}

	for _, m := range result.Data {
		if _, known := records[m.ID]; known {
			continue
		}
		if !isChatModel(m.ID) {
			continue
		}
		records[m.ID] = catalog.AttributeRecord{
			"context_window": guessContextWindow(m.ID),
			"capabilities":   []string{"streaming", "function_calling"},
		}
	}

	return records, nil
}

// isChatModel filters the API listing down to GPT chat completion models.
func isChatModel(modelID string) bool {
	if !strings.Contains(modelID, "gpt") {
		return false
	}
	return !strings.Contains(modelID, "instruct") && !strings.Contains(modelID, "edit")
}

// guessContextWindow estimates a context window from the model ID for models
// the API lists but the curated table does not cover.
func guessContextWindow(modelID string) int {
	switch {
	case strings.Contains(modelID, "32k"):
		return 32768
	case strings.Contains(modelID, "16k"):
		return 16385
	case strings.Contains(modelID, "turbo"):
		return 128000
	case strings.Contains(modelID, "gpt-4"):
		return 8192
	default:
		return 4096
	}
}

// staticModels returns the curated OpenAI model table.
func staticModels() map[string]any {
	return map[string]any{
		"gpt-4o": catalog.AttributeRecord{
			"context_window":    128000,
			"max_output_tokens": 16384,
			"pricing":           map[string]any{"input": 2.50, "output": 10.00},
			"capabilities":      []string{"streaming", "function_calling", "vision"},
		},
		"gpt-4o-mini": catalog.AttributeRecord{
			"context_window":    128000,
			"max_output_tokens": 16384,
			"pricing":           map[string]any{"input": 0.15, "output": 0.60},
			"capabilities":      []string{"streaming", "function_calling", "vision"},
		},
		"gpt-4-turbo": catalog.AttributeRecord{
			"context_window":    128000,
			"max_output_tokens": 4096,
			"pricing":           map[string]any{"input": 10.00, "output": 30.00},
			"capabilities":      []string{"streaming", "function_calling", "vision"},
		},
		"gpt-4": catalog.AttributeRecord{
			"context_window":    8192,
			"max_output_tokens": 4096,
			"pricing":           map[string]any{"input": 30.00, "output": 60.00},
			"capabilities":      []string{"streaming", "function_calling"},
		},
		"gpt-3.5-turbo": catalog.AttributeRecord{
			"context_window":    16385,
			"max_output_tokens": 4096,
			"pricing":           map[string]any{"input": 0.50, "output": 1.50},
			"capabilities":      []string{"streaming", "function_calling"},
		},
	}
}
