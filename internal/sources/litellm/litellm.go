// Package litellm syncs model metadata from the LiteLLM community database,
// a single aggregated JSON document covering every provider it proxies. The
// database is normalized into per-provider attribute records.
package litellm

import (
	"context"
	"math"
	"strings"

	"github.com/modeldex/modeldex/internal/transport"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/logging"
)

// DatabaseURL is the raw location of the LiteLLM pricing database.
const DatabaseURL = "https://raw.githubusercontent.com/BerriAI/litellm/main/model_prices_and_context_window.json"

// providerMap translates LiteLLM provider labels to catalog providers.
// Labels without an entry are not synced.
var providerMap = map[string]string{
	"openai":      "openai",
	"anthropic":   "anthropic",
	"gemini":      "gemini",
	"vertex_ai":   "gemini",
	"groq":        "groq",
	"openrouter":  "openrouter",
	"ollama":      "ollama",
	"ollama_chat": "ollama",
	"bedrock":     "bedrock",
}

// capabilityMap translates LiteLLM supports_* flags to capability tags.
var capabilityMap = map[string]string{
	"supports_function_calling":          "function_calling",
	"supports_parallel_function_calling": "parallel_function_calling",
	"supports_tool_choice":               "tool_choice",
	"supports_vision":                    "vision",
	"supports_audio_input":               "audio_input",
	"supports_audio_output":              "audio_output",
	"supports_pdf_input":                 "pdf_input",
	"supports_prompt_caching":            "prompt_caching",
	"supports_reasoning":                 "reasoning",
	"supports_response_schema":           "structured_output",
	"supports_system_messages":           "system_messages",
	"supports_native_streaming":          "streaming",
	"supports_web_search":                "web_search",
}

// prefixedProviders have their entries keyed as "<provider>/<model>" in the
// database; the prefix is stripped so records merge with fetcher output.
var prefixedProviders = map[string]bool{
	"anthropic": true,
	"openai":    true,
	"gemini":    true,
}

// Entry is a single model's metadata in the LiteLLM database.
type Entry struct {
	LiteLLMProvider                 string  `json:"litellm_provider"`
	Mode                            string  `json:"mode"`
	MaxTokens                       float64 `json:"max_tokens"`
	MaxInputTokens                  float64 `json:"max_input_tokens"`
	MaxOutputTokens                 float64 `json:"max_output_tokens"`
	InputCostPerToken               float64 `json:"input_cost_per_token"`
	OutputCostPerToken              float64 `json:"output_cost_per_token"`
	OutputCostReasoningToken        float64 `json:"output_cost_per_reasoning_token"`
	DeprecationDate                 string  `json:"deprecation_date"`
	SupportsFunctionCalling         bool    `json:"supports_function_calling"`
	SupportsParallelFunctionCalling bool    `json:"supports_parallel_function_calling"`
	SupportsToolChoice              bool    `json:"supports_tool_choice"`
	SupportsVision                  bool    `json:"supports_vision"`
	SupportsAudioInput              bool    `json:"supports_audio_input"`
	SupportsAudioOutput             bool    `json:"supports_audio_output"`
	SupportsPDFInput                bool    `json:"supports_pdf_input"`
	SupportsPromptCaching           bool    `json:"supports_prompt_caching"`
	SupportsReasoning               bool    `json:"supports_reasoning"`
	SupportsResponseSchema          bool    `json:"supports_response_schema"`
	SupportsSystemMessages          bool    `json:"supports_system_messages"`
	SupportsNativeStreaming         bool    `json:"supports_native_streaming"`
	SupportsWebSearch               bool    `json:"supports_web_search"`
}

// flags returns the entry's supports_* values keyed by flag name.
func (e Entry) flags() map[string]bool {
	return map[string]bool{
		"supports_function_calling":          e.SupportsFunctionCalling,
		"supports_parallel_function_calling": e.SupportsParallelFunctionCalling,
		"supports_tool_choice":               e.SupportsToolChoice,
		"supports_vision":                    e.SupportsVision,
		"supports_audio_input":               e.SupportsAudioInput,
		"supports_audio_output":              e.SupportsAudioOutput,
		"supports_pdf_input":                 e.SupportsPDFInput,
		"supports_prompt_caching":            e.SupportsPromptCaching,
		"supports_reasoning":                 e.SupportsReasoning,
		"supports_response_schema":           e.SupportsResponseSchema,
		"supports_system_messages":           e.SupportsSystemMessages,
		"supports_native_streaming":          e.SupportsNativeStreaming,
		"supports_web_search":                e.SupportsWebSearch,
	}
}

// Syncer downloads and normalizes the LiteLLM database.
type Syncer struct {
	transport *transport.Client
	url       string
}

// NewSyncer creates a Syncer against the public database.
func NewSyncer() *Syncer {
	return &Syncer{
		transport: transport.New(&transport.NoAuth{}, ""),
		url:       DatabaseURL,
	}
}

// NewSyncerWithURL creates a Syncer against an alternate database location.
func NewSyncerWithURL(url string) *Syncer {
	return &Syncer{
		transport: transport.New(&transport.NoAuth{}, ""),
		url:       url,
	}
}

// Fetch downloads the database and groups its entries into per-provider
// record maps suitable for reconciliation.
func (s *Syncer) Fetch(ctx context.Context) (map[string]map[string]any, error) {
	resp, err := s.transport.Get(ctx, s.url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var database map[string]Entry
	if err := transport.DecodeResponse(resp, &database); err != nil {
		return nil, err
	}

	return Normalize(database), nil
}

// Normalize groups database entries by catalog provider. Entries for
// providers outside the map and the schema sample are dropped.
func Normalize(database map[string]Entry) map[string]map[string]any {
	grouped := make(map[string]map[string]any)

	for name, entry := range database {
		if name == "sample_spec" {
			continue
		}
		provider, ok := providerMap[entry.LiteLLMProvider]
		if !ok {
			continue
		}

		id := modelID(name, provider)
		if id == "" {
			continue
		}

		if grouped[provider] == nil {
			grouped[provider] = make(map[string]any)
		}
		grouped[provider][id] = convert(entry)
	}

	for provider, records := range grouped {
		logging.Debug().Str("provider", provider).Int("models", len(records)).Msg("Normalized database entries")
	}
	return grouped
}

// modelID strips the provider prefix from database keys where LiteLLM uses
// one, so "anthropic/claude-3-opus" matches the fetcher's "claude-3-opus".
func modelID(name, provider string) string {
	if prefixedProviders[provider] {
		name = strings.TrimPrefix(name, provider+"/")
	}
	return name
}

// convert maps a database entry to an attribute record.
func convert(e Entry) catalog.AttributeRecord {
	record := catalog.AttributeRecord{}

	if e.MaxInputTokens > 0 {
		record["context_window"] = int(e.MaxInputTokens)
	} else if e.MaxTokens > 0 {
		record["context_window"] = int(e.MaxTokens)
	}
	if e.MaxOutputTokens > 0 {
		record["max_output_tokens"] = int(e.MaxOutputTokens)
	}

	pricing := map[string]any{}
	if e.InputCostPerToken > 0 {
		pricing["input"] = perMillion(e.InputCostPerToken)
	}
	if e.OutputCostPerToken > 0 {
		pricing["output"] = perMillion(e.OutputCostPerToken)
	}
	if e.OutputCostReasoningToken > 0 {
		pricing["reasoning"] = perMillion(e.OutputCostReasoningToken)
	}
	if len(pricing) > 0 {
		record["pricing"] = pricing
	}

	caps := capabilities(e)
	if len(caps) > 0 {
		record["capabilities"] = caps
	}

	if e.DeprecationDate != "" {
		record["deprecation_date"] = e.DeprecationDate
	}

	return record
}

// capabilities derives capability tags from the entry's mode and flags.
// Several flags can name the same tag (mode chat and supports_native_streaming
// both mean streaming), so tags are deduplicated here.
func capabilities(e Entry) []string {
	seen := make(map[string]struct{})
	var caps []string
	add := func(tag string) {
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			caps = append(caps, tag)
		}
	}

	if e.Mode == "chat" {
		add("streaming")
	}
	for flag, set := range e.flags() {
		if set {
			add(capabilityMap[flag])
		}
	}
	return caps
}

// perMillion converts a per-token cost to dollars per million tokens,
// rounded to four decimal places.
func perMillion(cost float64) float64 {
	return math.Round(cost*1e6*10000) / 10000
}
