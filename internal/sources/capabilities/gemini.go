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

const geminiModelsURL = "https://generativelanguage.googleapis.com/v1/models"

var (
	geminiEndpoints     = []string{"chat", "embeddings", "count_tokens"}
	geminiKnownFeatures = []string{
		"streaming", "function_calling", "cost_tracking", "usage_tracking",
		"dynamic_model_listing", "system_messages", "vision", "tool_use",
		"json_mode", "structured_outputs", "grounding", "code_execution",
		"multiple_images", "video_understanding", "audio_input",
		"document_understanding", "safety_settings", "citation_metadata",
		"multi_turn_conversations", "context_caching",
	}
)

type geminiListing struct {
	Models []struct {
		Name                       string   `json:"name"`
		InputTokenLimit            int      `json:"inputTokenLimit"`
		OutputTokenLimit           int      `json:"outputTokenLimit"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
}

type geminiDiscoverer struct {
	transport *transport.Client
	hasKey    bool
	baseURL   string
}

func newGemini() *geminiDiscoverer {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	return &geminiDiscoverer{
		transport: transport.New(&transport.QueryAuth{Param: "key"}, apiKey),
		hasKey:    apiKey != "",
		baseURL:   geminiModelsURL,
	}
}

func (d *geminiDiscoverer) Provider() string { return "gemini" }

// Discover lists Gemini models over the REST API and derives capabilities
// from their supported generation methods and name patterns.
func (d *geminiDiscoverer) Discover(ctx context.Context) (*catalog.CapabilityDocument, error) {
	if !d.hasKey {
		return nil, errors.ErrAPIKeyRequired
	}

	resp, err := d.transport.Get(ctx, d.baseURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var listing geminiListing
	if err := transport.DecodeResponse(resp, &listing); err != nil {
		return nil, err
	}

	doc := catalog.NewCapabilityDocument("gemini")
	doc.Endpoints = append(doc.Endpoints, geminiEndpoints...)

	for _, m := range listing.Models {
		name := strings.TrimPrefix(m.Name, "models/")
		caps := DetectFromModelID("gemini", name)

		for _, method := range m.SupportedGenerationMethods {
			switch method {
			case "generateContent":
				caps = reconcile.UnionStrings(caps, []string{"streaming", "function_calling"})
			case "embedContent":
				caps = reconcile.UnionStrings(caps, []string{"embeddings"})
			}
		}

		doc.Features = reconcile.UnionStrings(doc.Features, caps)

		contextWindow := m.InputTokenLimit
		if contextWindow == 0 {
			contextWindow = 32768
		}
		maxOutput := m.OutputTokenLimit
		if maxOutput == 0 {
			maxOutput = 2048
		}
		doc.ModelCapabilities[name] = catalog.AttributeRecord{
			"context_window":    contextWindow,
			"max_output_tokens": maxOutput,
			"capabilities":      caps,
		}
	}

	doc.Features = reconcile.UnionStrings(doc.Features, geminiKnownFeatures)
	return finalize(doc), nil
}
