// Package openrouter fetches model metadata from the OpenRouter public API.
// The listing carries pricing as per-token decimal strings which are
// converted to per-million-token dollar amounts.
package openrouter

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/modeldex/modeldex/internal/sources"
	"github.com/modeldex/modeldex/internal/transport"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/logging"
)

const modelsURL = "https://openrouter.ai/api/v1/models"

// maxModels caps how many models of the very large public listing are kept.
const maxModels = 30

func init() {
	sources.Register("openrouter", func() sources.Source { return NewClient() })
}

// priorityModels are always kept when present in the listing, ahead of the
// cap applied to the rest.
var priorityModels = []string{
	"openai/gpt-4o",
	"openai/gpt-4o-mini",
	"anthropic/claude-3.5-sonnet",
	"anthropic/claude-3.5-haiku",
	"google/gemini-2.0-flash-001",
	"google/gemini-flash-1.5",
	"meta-llama/llama-3.1-70b-instruct",
	"meta-llama/llama-3.1-8b-instruct",
	"mistralai/mistral-large",
	"deepseek/deepseek-chat",
}

// Response is the models listing envelope.
type Response struct {
	Data []ModelData `json:"data"`
}

// ModelData is a single model entry in the listing.
type ModelData struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	ContextLength int          `json:"context_length"`
	Pricing       PricingData  `json:"pricing"`
	TopProvider   *TopProvider `json:"top_provider"`
	Architecture  Architecture `json:"architecture"`
}

// PricingData carries per-token prices as decimal strings.
type PricingData struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// TopProvider carries limits reported by the model's primary host.
type TopProvider struct {
	MaxCompletionTokens *int `json:"max_completion_tokens"`
}

// Architecture describes the model's input and output modalities.
type Architecture struct {
	Modality string `json:"modality"`
}

// Client implements the sources.Source interface for OpenRouter. The models
// listing is public, so no API key is required.
type Client struct {
	transport *transport.Client
	baseURL   string
}

// NewClient creates a new OpenRouter client.
func NewClient() *Client {
	return &Client{
		transport: transport.New(&transport.NoAuth{}, ""),
		baseURL:   modelsURL,
	}
}

// Provider implements sources.Source.
func (c *Client) Provider() string { return "openrouter" }

// DefaultModel implements sources.Source.
func (c *Client) DefaultModel() string { return "openai/gpt-4o-mini" }

// Fetch returns OpenRouter model records: priority models first, then the
// rest of the listing in order until the cap is reached.
func (c *Client) Fetch(ctx context.Context) (map[string]any, error) {
	resp, err := c.transport.Get(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var listing Response
	if err := transport.DecodeResponse(resp, &listing); err != nil {
		return nil, err
	}

	byID := make(map[string]ModelData, len(listing.Data))
	for _, m := range listing.Data {
		if m.ID != "" {
			byID[m.ID] = m
		}
	}

	records := make(map[string]any, maxModels)
	for _, id := range priorityModels {
		if m, ok := byID[id]; ok {
			records[id] = convert(m)
		}
	}
	for _, m := range sortedListing(listing.Data) {
		if len(records) >= maxModels {
			break
		}
		if _, ok := records[m.ID]; ok || m.ID == "" {
			continue
		}
		records[m.ID] = convert(m)
	}

	logging.Debug().Str("provider", "openrouter").Int("models", len(records)).Msg("Fetched models")
	return records, nil
}

// sortedListing orders the listing by ID for deterministic cap cutoff.
func sortedListing(data []ModelData) []ModelData {
	out := make([]ModelData, len(data))
	copy(out, data)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// convert maps a listing entry to an attribute record.
func convert(m ModelData) catalog.AttributeRecord {
	contextWindow := m.ContextLength
	if contextWindow == 0 {
		contextWindow = 4096
	}
	maxOutput := contextWindow
	if m.TopProvider != nil && m.TopProvider.MaxCompletionTokens != nil && *m.TopProvider.MaxCompletionTokens > 0 {
		maxOutput = *m.TopProvider.MaxCompletionTokens
	}

	caps := []string{"streaming"}
	if strings.Contains(m.Architecture.Modality, "image") {
		caps = append(caps, "vision")
	}

	record := catalog.AttributeRecord{
		"context_window":    contextWindow,
		"max_output_tokens": maxOutput,
		"capabilities":      caps,
	}

	pricing := map[string]any{}
	if v, ok := perMillion(m.Pricing.Prompt); ok {
		pricing["input"] = v
	}
	if v, ok := perMillion(m.Pricing.Completion); ok {
		pricing["output"] = v
	}
	if len(pricing) > 0 {
		record["pricing"] = pricing
	}

	return record
}

// perMillion converts a per-token price string to dollars per million
// tokens, rounded to four decimal places.
func perMillion(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return math.Round(v*1e6*10000) / 10000, true
}
