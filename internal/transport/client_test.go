package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeldex/modeldex/pkg/errors"
)

func TestBearerAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	(&BearerAuth{}).Apply(req, "sk-test")

	assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
}

func TestHeaderAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	(&HeaderAuth{Header: "x-api-key"}).Apply(req, "sk-test")

	assert.Equal(t, "sk-test", req.Header.Get("x-api-key"))
}

func TestQueryAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/models", nil)
	(&QueryAuth{Param: "key"}).Apply(req, "sk-test")

	assert.Equal(t, "sk-test", req.URL.Query().Get("key"))
}

func TestClientAppliesAuthAndHeaders(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := New(&BearerAuth{}, "sk-test").WithHeader("anthropic-version", "2023-06-01")

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	require.NotNil(t, got)
	assert.Equal(t, "Bearer sk-test", got.Header.Get("Authorization"))
	assert.Equal(t, "2023-06-01", got.Header.Get("anthropic-version"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
}

func TestClientSkipsAuthWithoutKey(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := New(&BearerAuth{}, "")

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	require.NotNil(t, got)
	assert.Empty(t, got.Header.Get("Authorization"))
}

func TestDecodeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[{"id":"m1"}]}`)) //nolint:errcheck
	}))
	defer server.Close()

	resp, err := New(nil, "").Get(context.Background(), server.URL)
	require.NoError(t, err)

	var target struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, DecodeResponse(resp, &target))
	require.Len(t, target.Data, 1)
	assert.Equal(t, "m1", target.Data[0].ID)
}

func TestDecodeResponseNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`)) //nolint:errcheck
	}))
	defer server.Close()

	resp, err := New(nil, "").Get(context.Background(), server.URL)
	require.NoError(t, err)

	var target map[string]any
	err = DecodeResponse(resp, &target)
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "rate limited")
}

func TestDecodeResponseInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`)) //nolint:errcheck
	}))
	defer server.Close()

	resp, err := New(nil, "").Get(context.Background(), server.URL)
	require.NoError(t, err)

	var target map[string]any
	err = DecodeResponse(resp, &target)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
