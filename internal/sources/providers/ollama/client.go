// Package ollama fetches locally installed models from a running Ollama
// server. The tags endpoint does not report context windows, so they are
// inferred from model name patterns.
package ollama

import (
	"context"
	"os"
	"strings"

	"github.com/modeldex/modeldex/internal/sources"
	"github.com/modeldex/modeldex/internal/transport"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/logging"
)

const defaultBaseURL = "http://localhost:11434"

func init() {
	sources.Register("ollama", func() sources.Source { return NewClient() })
}

// Response is the /api/tags envelope.
type Response struct {
	Models []ModelData `json:"models"`
}

// ModelData is a single installed model.
type ModelData struct {
	Name       string  `json:"name"`
	Size       int64   `json:"size"`
	Digest     string  `json:"digest"`
	ModifiedAt string  `json:"modified_at"`
	Details    Details `json:"details"`
}

// Details carries model family metadata.
type Details struct {
	Family        string `json:"family"`
	ParameterSize string `json:"parameter_size"`
}

// contextWindows maps name patterns to known context window sizes, checked
// in order so more specific patterns win.
var contextWindows = []struct {
	pattern string
	size    int
}{
	{"llama3", 8192},
	{"llama2", 4096},
	{"mixtral", 32768},
	{"mistral", 8192},
	{"phi", 2048},
}

// Client implements the sources.Source interface for Ollama.
type Client struct {
	transport *transport.Client
	baseURL   string
}

// NewClient creates a new Ollama client targeting OLLAMA_HOST or the local
// default.
func NewClient() *Client {
	baseURL := os.Getenv("OLLAMA_HOST")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		transport: transport.New(&transport.NoAuth{}, ""),
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

// Provider implements sources.Source.
func (c *Client) Provider() string { return "ollama" }

// DefaultModel implements sources.Source.
func (c *Client) DefaultModel() string { return "llama3.2" }

// Fetch returns records for installed models, falling back to a curated
// table when no server is reachable.
func (c *Client) Fetch(ctx context.Context) (map[string]any, error) {
	resp, err := c.transport.Get(ctx, c.baseURL+"/api/tags")
	if err != nil {
		logging.Debug().Err(err).Str("provider", "ollama").Msg("Server unreachable, using curated models")
		return staticModels(), nil
	}
	defer func() { _ = resp.Body.Close() }()

	var listing Response
	if err := transport.DecodeResponse(resp, &listing); err != nil {
		logging.Warn().Err(err).Str("provider", "ollama").Msg("Tags response invalid, using curated models")
		return staticModels(), nil
	}

	records := make(map[string]any, len(listing.Models))
	for _, m := range listing.Models {
		if m.Name == "" {
			continue
		}
		// Installed tags look like "llama3.2:latest".
		id := strings.TrimSuffix(m.Name, ":latest")
		records[id] = record(id)
	}
	if len(records) == 0 {
		return staticModels(), nil
	}
	return records, nil
}

// record builds an attribute record for a local model name.
func record(name string) catalog.AttributeRecord {
	return catalog.AttributeRecord{
		"context_window":    guessContextWindow(name),
		"max_output_tokens": 4096,
		"pricing":           map[string]any{"input": 0.0, "output": 0.0},
		"capabilities":      []string{"streaming"},
	}
}

// guessContextWindow infers a context window from the model name.
func guessContextWindow(name string) int {
	lower := strings.ToLower(name)
	for _, cw := range contextWindows {
		if strings.Contains(lower, cw.pattern) {
			return cw.size
		}
	}
	return 4096
}

// staticModels returns the curated table used when no server is running.
func staticModels() map[string]any {
	names := []string{"llama3.2", "llama3.1", "llama2", "mistral", "mixtral"}
	records := make(map[string]any, len(names))
	for _, name := range names {
		records[name] = record(name)
	}
	return records
}
