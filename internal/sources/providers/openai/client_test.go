package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeldex/modeldex/internal/transport"
	"github.com/modeldex/modeldex/pkg/catalog"
)

func TestFetchWithoutKeyReturnsCuratedModels(t *testing.T) {
	client := &Client{hasKey: false}

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Contains(t, records, "gpt-4o-mini")
	assert.Contains(t, records, "gpt-4")

	record, ok := records["gpt-4o-mini"].(catalog.AttributeRecord)
	require.True(t, ok)
	assert.Equal(t, 128000, record["context_window"])
	assert.NotNil(t, record["pricing"])
}

func TestFetchAddsUnknownChatModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"object":"list","data":[
			{"id":"gpt-5-preview","object":"model"},
			{"id":"gpt-3.5-turbo-instruct","object":"model"},
			{"id":"text-embedding-3-small","object":"model"},
			{"id":"gpt-4o","object":"model"}
		]}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := &Client{
		transport: transport.New(&transport.BearerAuth{}, "sk-test"),
		hasKey:    true,
		baseURL:   server.URL,
	}

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)

	// Unknown chat model gets a guessed record.
	require.Contains(t, records, "gpt-5-preview")
	record := records["gpt-5-preview"].(catalog.AttributeRecord)
	assert.Equal(t, 4096, record["context_window"])

	// Instruct and non-GPT models are excluded; curated entries are kept.
	assert.NotContains(t, records, "gpt-3.5-turbo-instruct")
	assert.NotContains(t, records, "text-embedding-3-small")
	curated := records["gpt-4o"].(catalog.AttributeRecord)
	assert.NotNil(t, curated["pricing"])
}

func TestFetchFallsBackOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := &Client{
		transport: transport.New(&transport.BearerAuth{}, "sk-test"),
		hasKey:    true,
		baseURL:   server.URL,
	}

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, records, "gpt-4o-mini")
}

func TestGuessContextWindow(t *testing.T) {
	tests := []struct {
		modelID string
		want    int
	}{
		{"gpt-4-32k", 32768},
		{"gpt-3.5-turbo-16k-0613", 16385},
		{"gpt-4-turbo-2024-04-09", 128000},
		{"gpt-4-0613", 8192},
		{"gpt-weird", 4096},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, guessContextWindow(tt.modelID), tt.modelID)
	}
}

func TestIsChatModel(t *testing.T) {
	assert.True(t, isChatModel("gpt-4o"))
	assert.False(t, isChatModel("gpt-3.5-turbo-instruct"))
	assert.False(t, isChatModel("text-davinci-edit-001"))
	assert.False(t, isChatModel("whisper-1"))
}
