package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeldex/modeldex/internal/transport"
	"github.com/modeldex/modeldex/pkg/catalog"
)

func newTestClient(url string) *Client {
	return &Client{
		transport: transport.New(&transport.NoAuth{}, ""),
		baseURL:   url,
	}
}

func TestFetchConvertsPricingPerMillion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[{
			"id":"openai/gpt-4o-mini",
			"context_length":128000,
			"pricing":{"prompt":"0.00000015","completion":"0.0000006"},
			"top_provider":{"max_completion_tokens":16384},
			"architecture":{"modality":"text+image->text"}
		}]}`)) //nolint:errcheck
	}))
	defer server.Close()

	records, err := newTestClient(server.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Contains(t, records, "openai/gpt-4o-mini")

	record := records["openai/gpt-4o-mini"].(catalog.AttributeRecord)
	assert.Equal(t, 128000, record["context_window"])
	assert.Equal(t, 16384, record["max_output_tokens"])

	pricing := record["pricing"].(map[string]any)
	assert.Equal(t, 0.15, pricing["input"])
	assert.Equal(t, 0.6, pricing["output"])

	caps := record["capabilities"].([]string)
	assert.Contains(t, caps, "vision")
}

func TestFetchCapsListingSize(t *testing.T) {
	var data []map[string]any
	for i := 0; i < 50; i++ {
		data = append(data, map[string]any{
			"id":             fmt.Sprintf("vendor/model-%02d", i),
			"context_length": 4096,
			"pricing":        map[string]string{"prompt": "0.000001", "completion": "0.000002"},
		})
	}
	// A priority model buried at the end of the listing.
	data = append(data, map[string]any{
		"id":             "anthropic/claude-3.5-sonnet",
		"context_length": 200000,
		"pricing":        map[string]string{"prompt": "0.000003", "completion": "0.000015"},
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": data}) //nolint:errcheck
	}))
	defer server.Close()

	records, err := newTestClient(server.URL).Fetch(context.Background())
	require.NoError(t, err)

	assert.Len(t, records, maxModels)
	assert.Contains(t, records, "anthropic/claude-3.5-sonnet")
}

func TestPerMillion(t *testing.T) {
	v, ok := perMillion("0.00000015")
	require.True(t, ok)
	assert.Equal(t, 0.15, v)

	_, ok = perMillion("")
	assert.False(t, ok)

	_, ok = perMillion("not a number")
	assert.False(t, ok)

	_, ok = perMillion("-0.1")
	assert.False(t, ok)
}

func TestConvertDefaultsContextWindow(t *testing.T) {
	record := convert(ModelData{ID: "x/y"})
	assert.Equal(t, 4096, record["context_window"])
	assert.NotContains(t, record, "pricing")
}
