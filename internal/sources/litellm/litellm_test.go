package litellm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeldex/modeldex/pkg/catalog"
)

func TestNormalizeGroupsByProvider(t *testing.T) {
	database := map[string]Entry{
		"gpt-4o":                  {LiteLLMProvider: "openai", Mode: "chat"},
		"anthropic/claude-3-opus": {LiteLLMProvider: "anthropic", Mode: "chat"},
		"groq/llama-3.3-70b":      {LiteLLMProvider: "groq", Mode: "chat"},
		"some/unknown-model":      {LiteLLMProvider: "replicate", Mode: "chat"},
		"sample_spec":             {LiteLLMProvider: "openai", Mode: "chat"},
	}

	grouped := Normalize(database)

	assert.Contains(t, grouped["openai"], "gpt-4o")
	assert.Contains(t, grouped["anthropic"], "claude-3-opus")
	assert.Contains(t, grouped["groq"], "groq/llama-3.3-70b")
	assert.NotContains(t, grouped, "replicate")
	assert.NotContains(t, grouped["openai"], "sample_spec")
}

func TestNormalizeMapsAggregatorAliases(t *testing.T) {
	database := map[string]Entry{
		"gemini/gemini-1.5-pro": {LiteLLMProvider: "vertex_ai", Mode: "chat"},
		"llama3.2":              {LiteLLMProvider: "ollama_chat", Mode: "chat"},
	}

	grouped := Normalize(database)

	assert.Contains(t, grouped["gemini"], "gemini-1.5-pro")
	assert.Contains(t, grouped["ollama"], "llama3.2")
}

func TestConvertPricing(t *testing.T) {
	entry := Entry{
		LiteLLMProvider:          "openai",
		Mode:                     "chat",
		MaxInputTokens:           128000,
		MaxOutputTokens:          16384,
		InputCostPerToken:        0.0000025,
		OutputCostPerToken:       0.00001,
		OutputCostReasoningToken: 0.00006,
	}

	record := convert(entry)

	assert.Equal(t, 128000, record["context_window"])
	assert.Equal(t, 16384, record["max_output_tokens"])

	pricing, ok := record["pricing"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2.5, pricing["input"])
	assert.Equal(t, 10.0, pricing["output"])
	assert.Equal(t, 60.0, pricing["reasoning"])
}

func TestConvertPricingRounding(t *testing.T) {
	// 0.00000015 per token is 0.15 per million; no float drift allowed.
	assert.Equal(t, 0.15, perMillion(0.00000015))
	assert.Equal(t, 2.5, perMillion(0.0000025))
}

func TestConvertChatModeImpliesStreaming(t *testing.T) {
	record := convert(Entry{LiteLLMProvider: "openai", Mode: "chat"})

	caps, ok := record["capabilities"].([]string)
	require.True(t, ok)
	assert.Contains(t, caps, "streaming")
}

func TestConvertCapabilityFlags(t *testing.T) {
	record := convert(Entry{
		LiteLLMProvider:                 "openai",
		Mode:                            "chat",
		SupportsFunctionCalling:         true,
		SupportsParallelFunctionCalling: true,
		SupportsToolChoice:              true,
		SupportsVision:                  true,
		SupportsPDFInput:                true,
		SupportsReasoning:               true,
		SupportsResponseSchema:          true,
		SupportsSystemMessages:          true,
	})

	caps, ok := record["capabilities"].([]string)
	require.True(t, ok)
	assert.Contains(t, caps, "function_calling")
	assert.Contains(t, caps, "parallel_function_calling")
	assert.Contains(t, caps, "tool_choice")
	assert.Contains(t, caps, "vision")
	assert.Contains(t, caps, "pdf_input")
	assert.Contains(t, caps, "reasoning")
	assert.Contains(t, caps, "structured_output")
	assert.Contains(t, caps, "system_messages")
	assert.NotContains(t, caps, "web_search")
	assert.NotContains(t, caps, "audio_input")
}

func TestConvertNativeStreamingDeduplicated(t *testing.T) {
	record := convert(Entry{
		LiteLLMProvider:         "openai",
		Mode:                    "chat",
		SupportsNativeStreaming: true,
	})

	caps, ok := record["capabilities"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"streaming"}, caps)
}

func TestSyncerFetchCarriesAllFlagTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"gpt-4o": {
				"litellm_provider": "openai",
				"mode": "chat",
				"supports_tool_choice": true,
				"supports_parallel_function_calling": true,
				"supports_response_schema": true,
				"supports_system_messages": true,
				"supports_pdf_input": true
			}
		}`)) //nolint:errcheck
	}))
	defer server.Close()

	grouped, err := NewSyncerWithURL(server.URL).Fetch(context.Background())
	require.NoError(t, err)

	record, ok := grouped["openai"]["gpt-4o"].(catalog.AttributeRecord)
	require.True(t, ok)

	caps, ok := record["capabilities"].([]string)
	require.True(t, ok)
	assert.Contains(t, caps, "tool_choice")
	assert.Contains(t, caps, "parallel_function_calling")
	assert.Contains(t, caps, "structured_output")
	assert.Contains(t, caps, "system_messages")
	assert.Contains(t, caps, "pdf_input")
	assert.Contains(t, caps, "streaming")
}

func TestConvertDeprecationDate(t *testing.T) {
	record := convert(Entry{
		LiteLLMProvider: "openai",
		DeprecationDate: "2025-06-01",
	})

	assert.Equal(t, "2025-06-01", record["deprecation_date"])

	empty := convert(Entry{LiteLLMProvider: "openai"})
	assert.NotContains(t, empty, "deprecation_date")
}

func TestConvertMaxTokensFallback(t *testing.T) {
	record := convert(Entry{LiteLLMProvider: "openai", MaxTokens: 8192})
	assert.Equal(t, 8192, record["context_window"])
}

func TestSyncerFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"sample_spec": {"litellm_provider": "openai", "mode": "chat"},
			"gpt-4o-mini": {
				"litellm_provider": "openai",
				"mode": "chat",
				"max_input_tokens": 128000,
				"max_output_tokens": 16384,
				"input_cost_per_token": 0.00000015,
				"output_cost_per_token": 0.0000006,
				"supports_function_calling": true,
				"supports_vision": true
			}
		}`)) //nolint:errcheck
	}))
	defer server.Close()

	syncer := NewSyncerWithURL(server.URL)
	grouped, err := syncer.Fetch(context.Background())
	require.NoError(t, err)

	require.Contains(t, grouped, "openai")
	require.Contains(t, grouped["openai"], "gpt-4o-mini")

	record, ok := grouped["openai"]["gpt-4o-mini"].(catalog.AttributeRecord)
	require.True(t, ok)
	assert.Equal(t, 128000, record["context_window"])

	pricing := record["pricing"].(map[string]any)
	assert.Equal(t, 0.15, pricing["input"])
	assert.Equal(t, 0.6, pricing["output"])
}
