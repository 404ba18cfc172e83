// Package groq fetches model metadata from the Groq API, which exposes an
// OpenAI-compatible models listing that includes context window sizes.
package groq

import (
	"context"
	"os"

	"github.com/modeldex/modeldex/internal/sources"
	"github.com/modeldex/modeldex/internal/transport"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/logging"
)

const modelsURL = "https://api.groq.com/openai/v1/models"

func init() {
	sources.Register("groq", func() sources.Source { return NewClient() })
}

// Response is the models listing envelope.
type Response struct {
	Object string      `json:"object"`
	Data   []ModelData `json:"data"`
}

// ModelData is a single model entry in the listing.
type ModelData struct {
	ID                  string `json:"id"`
	Object              string `json:"object"`
	Created             int64  `json:"created"`
	OwnedBy             string `json:"owned_by"`
	Active              bool   `json:"active"`
	ContextWindow       int    `json:"context_window"`
	MaxCompletionTokens int    `json:"max_completion_tokens"`
}

// Client implements the sources.Source interface for Groq.
type Client struct {
	transport *transport.Client
	hasKey    bool
	baseURL   string
}

// NewClient creates a new Groq client authenticated from GROQ_API_KEY.
func NewClient() *Client {
	apiKey := os.Getenv("GROQ_API_KEY")
	return &Client{
		transport: transport.New(&transport.BearerAuth{}, apiKey),
		hasKey:    apiKey != "",
		baseURL:   modelsURL,
	}
}

// Provider implements sources.Source.
func (c *Client) Provider() string { return "groq" }

// DefaultModel implements sources.Source.
func (c *Client) DefaultModel() string { return "llama-3.3-70b-versatile" }

// Fetch returns Groq model records, listed live when an API key is
// available and falling back to a curated table otherwise.
func (c *Client) Fetch(ctx context.Context) (map[string]any, error) {
	if !c.hasKey {
		logging.Debug().Str("provider", "groq").Msg("No API key, using curated models")
		return staticModels(), nil
	}

	resp, err := c.transport.Get(ctx, c.baseURL)
	if err != nil {
		logging.Warn().Err(err).Str("provider", "groq").Msg("Models request failed, using curated models")
		return staticModels(), nil
	}
	defer func() { _ = resp.Body.Close() }()

	var listing Response
	if err := transport.DecodeResponse(resp, &listing); err != nil {
		logging.Warn().Err(err).Str("provider", "groq").Msg("Models response invalid, using curated models")
		return staticModels(), nil
	}

	records := make(map[string]any, len(listing.Data))
	for _, m := range listing.Data {
		if m.ID == "" {
			continue
		}
		records[m.ID] = convert(m)
	}
	if len(records) == 0 {
		return staticModels(), nil
	}
	return records, nil
}

// convert maps a listing entry to an attribute record.
func convert(m ModelData) catalog.AttributeRecord {
	contextWindow := m.ContextWindow
	if contextWindow == 0 {
		contextWindow = 8192
	}
	maxOutput := m.MaxCompletionTokens
	if maxOutput == 0 {
		maxOutput = contextWindow
	}
	return catalog.AttributeRecord{
		"context_window":    contextWindow,
		"max_output_tokens": maxOutput,
		"capabilities":      []string{"streaming", "function_calling"},
	}
}

// staticModels returns the curated Groq model table.
func staticModels() map[string]any {
	return map[string]any{
		"llama-3.3-70b-versatile": catalog.AttributeRecord{
			"context_window":    131072,
			"max_output_tokens": 32768,
			"pricing":           map[string]any{"input": 0.59, "output": 0.79},
			"capabilities":      []string{"streaming", "function_calling"},
		},
		"llama-3.1-8b-instant": catalog.AttributeRecord{
			"context_window":    131072,
			"max_output_tokens": 8192,
			"pricing":           map[string]any{"input": 0.05, "output": 0.08},
			"capabilities":      []string{"streaming", "function_calling"},
		},
		"mixtral-8x7b-32768": catalog.AttributeRecord{
			"context_window":    32768,
			"max_output_tokens": 32768,
			"pricing":           map[string]any{"input": 0.24, "output": 0.24},
			"capabilities":      []string{"streaming", "function_calling"},
		},
		"gemma2-9b-it": catalog.AttributeRecord{
			"context_window":    8192,
			"max_output_tokens": 8192,
			"pricing":           map[string]any{"input": 0.20, "output": 0.20},
			"capabilities":      []string{"streaming"},
		},
	}
}
