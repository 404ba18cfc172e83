package groq

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
	assert.Contains(t, records, "llama-3.3-70b-versatile")
}

func TestFetchUsesListingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"object":"list","data":[
			{"id":"llama-3.3-70b-versatile","context_window":131072,"max_completion_tokens":32768,"active":true},
			{"id":"whisper-large-v3","context_window":448,"active":true},
			{"id":"","context_window":100}
		]}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := &Client{
		transport: transport.New(&transport.BearerAuth{}, "gsk-test"),
		hasKey:    true,
		baseURL:   server.URL,
	}

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	record := records["llama-3.3-70b-versatile"].(catalog.AttributeRecord)
	assert.Equal(t, 131072, record["context_window"])
	assert.Equal(t, 32768, record["max_output_tokens"])
}

func TestConvertDefaults(t *testing.T) {
	record := convert(ModelData{ID: "mystery"})
	assert.Equal(t, 8192, record["context_window"])
	assert.Equal(t, 8192, record["max_output_tokens"])
}

func TestFetchFallsBackOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := &Client{
		transport: transport.New(&transport.BearerAuth{}, "gsk-test"),
		hasKey:    true,
		baseURL:   server.URL,
	}

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, records, "llama-3.3-70b-versatile")
}
