// Package gemini fetches model metadata from the Gemini API via the Google
// GenAI SDK, falling back to a curated table when no API key is configured
// or the call fails.
package gemini

import (
	"context"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/modeldex/modeldex/internal/sources"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/logging"
)

func init() {
	sources.Register("gemini", func() sources.Source { return NewClient() })
}

// pricing is the per-million-token price overlay for known models. The list
// endpoint carries no pricing, so this table supplies it.
var pricing = map[string]map[string]any{
	"gemini-2.0-flash": {"input": 0.10, "output": 0.40},
	"gemini-1.5-pro":   {"input": 1.25, "output": 5.00},
	"gemini-1.5-flash": {"input": 0.075, "output": 0.30},
}

// Client implements the sources.Source interface for Gemini.
type Client struct {
	apiKey string
}

// NewClient creates a new Gemini client authenticated from GEMINI_API_KEY or
// GOOGLE_API_KEY.
func NewClient() *Client {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	return &Client{apiKey: apiKey}
}

// Provider implements sources.Source.
func (c *Client) Provider() string { return "gemini" }

// DefaultModel implements sources.Source.
func (c *Client) DefaultModel() string { return "gemini-2.0-flash" }

// Fetch returns Gemini model records, listed live via the GenAI SDK when an
// API key is available.
func (c *Client) Fetch(ctx context.Context) (map[string]any, error) {
	if c.apiKey == "" {
		logging.Debug().Str("provider", "gemini").Msg("No API key, using curated models")
		return staticModels(), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  c.apiKey,
	})
	if err != nil {
		logging.Warn().Err(err).Str("provider", "gemini").Msg("GenAI client failed, using curated models")
		return staticModels(), nil
	}

	models, err := listAll(ctx, client)
	if err != nil {
		logging.Warn().Err(err).Str("provider", "gemini").Msg("Models request failed, using curated models")
		return staticModels(), nil
	}

	records := make(map[string]any, len(models))
	for _, m := range models {
		if !strings.Contains(m.Name, "gemini") {
			continue
		}
		records[modelID(m.Name)] = convert(m)
	}
	if len(records) == 0 {
		return staticModels(), nil
	}
	return records, nil
}

// listAll pages through the models listing.
func listAll(ctx context.Context, client *genai.Client) ([]*genai.Model, error) {
	var models []*genai.Model
	pageToken := ""

	for {
		config := &genai.ListModelsConfig{
			QueryBase: genai.Ptr(true),
			PageSize:  100,
		}
		if pageToken != "" {
			config.PageToken = pageToken
		}

		response, err := client.Models.List(ctx, config)
		if err != nil {
			return nil, err
		}

		models = append(models, response.Items...)

		if response.NextPageToken == "" {
			break
		}
		pageToken = response.NextPageToken
	}

	return models, nil
}

// convert maps a GenAI model to an attribute record.
func convert(m *genai.Model) catalog.AttributeRecord {
	contextWindow := 32768
	if m.InputTokenLimit > 0 {
		contextWindow = int(m.InputTokenLimit)
	}
	maxOutput := 8192
	if m.OutputTokenLimit > 0 {
		maxOutput = int(m.OutputTokenLimit)
	}

	record := catalog.AttributeRecord{
		"context_window":    contextWindow,
		"max_output_tokens": maxOutput,
		"capabilities":      capabilities(m),
	}

	if price, ok := pricing[modelID(m.Name)]; ok {
		record["pricing"] = price
	}

	return record
}

// capabilities infers capability tags from the model listing.
func capabilities(m *genai.Model) []string {
	caps := []string{"streaming"}

	for _, action := range m.SupportedActions {
		if action == "generateContent" {
			caps = append(caps, "function_calling")
			break
		}
	}

	if strings.Contains(m.Name, "vision") || strings.Contains(m.Name, "pro") {
		caps = append(caps, "vision")
	}

	return caps
}

// modelID strips the "models/" resource prefix.
func modelID(name string) string {
	return strings.TrimPrefix(name, "models/")
}

// staticModels returns the curated Gemini model table.
func staticModels() map[string]any {
	return map[string]any{
		"gemini-2.0-flash": catalog.AttributeRecord{
			"context_window":    1048576,
			"max_output_tokens": 8192,
			"pricing":           pricing["gemini-2.0-flash"],
			"capabilities":      []string{"streaming", "function_calling", "vision"},
		},
		"gemini-1.5-pro": catalog.AttributeRecord{
			"context_window":    2097152,
			"max_output_tokens": 8192,
			"pricing":           pricing["gemini-1.5-pro"],
			"capabilities":      []string{"streaming", "function_calling", "vision"},
		},
		"gemini-1.5-flash": catalog.AttributeRecord{
			"context_window":    1048576,
			"max_output_tokens": 8192,
			"pricing":           pricing["gemini-1.5-flash"],
			"capabilities":      []string{"streaming", "function_calling", "vision"},
		},
	}
}
