package capabilities

import (
	"context"
	"os"
	"strings"

	"github.com/modeldex/modeldex/internal/transport"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/errors"
	"github.com/modeldex/modeldex/pkg/reconcile"
)

const openAIModelsURL = "https://api.openai.com/v1/models"

// openAIKnownEndpoints and openAIKnownFeatures are the platform surfaces the
// API offers regardless of which models the key can see.
var (
	openAIKnownEndpoints = []string{
		"completions", "fine_tuning", "files", "assistants",
		"threads", "runs", "vector_stores",
	}
	openAIKnownFeatures = []string{
		"streaming", "function_calling", "cost_tracking", "usage_tracking",
		"dynamic_model_listing", "batch_operations", "file_uploads",
		"rate_limiting_headers", "system_messages", "json_mode", "tool_use",
		"parallel_function_calling", "assistants_api", "code_interpreter",
		"retrieval", "fine_tuning_api", "moderation", "logprobs",
		"seed_control", "response_format",
	}
)

// openAIContextOverrides corrects context windows the listing reports wrong
// or not at all. Exact IDs are checked before substring matches.
var openAIContextOverrides = []struct {
	pattern string
	size    int
}{
	{"gpt-4o-mini", 128000},
	{"gpt-4o", 128000},
	{"gpt-4-turbo", 128000},
	{"gpt-4", 8192},
	{"gpt-3.5-turbo", 16385},
	{"o1-preview", 128000},
	{"o1-mini", 128000},
	{"o3", 200000},
	{"o1", 200000},
}

type openAIListing struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type openAIDiscoverer struct {
	transport *transport.Client
	hasKey    bool
	baseURL   string
}

func newOpenAI() *openAIDiscoverer {
	apiKey := os.Getenv("OPENAI_API_KEY")
	return &openAIDiscoverer{
		transport: transport.New(&transport.BearerAuth{}, apiKey),
		hasKey:    apiKey != "",
		baseURL:   openAIModelsURL,
	}
}

func (d *openAIDiscoverer) Provider() string { return "openai" }

// Discover lists OpenAI models and classifies each by its ID: specialized
// models mark their endpoint, chat models contribute per-model capability
// records.
func (d *openAIDiscoverer) Discover(ctx context.Context) (*catalog.CapabilityDocument, error) {
	if !d.hasKey {
		return nil, errors.ErrAPIKeyRequired
	}

	resp, err := d.transport.Get(ctx, d.baseURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var listing openAIListing
	if err := transport.DecodeResponse(resp, &listing); err != nil {
		return nil, err
	}

	doc := catalog.NewCapabilityDocument("openai")
	for _, m := range listing.Data {
		id := m.ID
		switch {
		case strings.Contains(id, "embedding"):
			doc.Endpoints = reconcile.UnionStrings(doc.Endpoints, []string{"embeddings"})
			doc.Features = reconcile.UnionStrings(doc.Features, []string{"embeddings"})
		case strings.Contains(id, "dall-e"):
			doc.Endpoints = reconcile.UnionStrings(doc.Endpoints, []string{"images"})
			doc.Features = reconcile.UnionStrings(doc.Features, []string{"image_generation"})
		case strings.Contains(id, "whisper"):
			doc.Endpoints = reconcile.UnionStrings(doc.Endpoints, []string{"audio"})
			doc.Features = reconcile.UnionStrings(doc.Features, []string{"speech_recognition"})
		case strings.Contains(id, "tts"):
			doc.Endpoints = reconcile.UnionStrings(doc.Endpoints, []string{"audio"})
			doc.Features = reconcile.UnionStrings(doc.Features, []string{"speech_synthesis"})
		default:
			doc.Endpoints = reconcile.UnionStrings(doc.Endpoints, []string{"chat"})
			caps := DetectFromModelID("openai", id)
			doc.Features = reconcile.UnionStrings(doc.Features, caps)
			doc.ModelCapabilities[id] = catalog.AttributeRecord{
				"context_window": openAIContextWindow(id),
				"capabilities":   caps,
			}
		}
	}

	doc.Endpoints = reconcile.UnionStrings(doc.Endpoints, openAIKnownEndpoints)
	doc.Features = reconcile.UnionStrings(doc.Features, openAIKnownFeatures)
	return finalize(doc), nil
}

func openAIContextWindow(id string) int {
	for _, o := range openAIContextOverrides {
		if id == o.pattern {
			return o.size
		}
	}
	for _, o := range openAIContextOverrides {
		if strings.Contains(id, o.pattern) {
			return o.size
		}
	}
	return 4096
}
