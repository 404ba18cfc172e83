package capabilities

import (
	"context"
	"os"

	"github.com/modeldex/modeldex/internal/transport"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/logging"
	"github.com/modeldex/modeldex/pkg/reconcile"
)

const (
	anthropicModelsURL  = "https://api.anthropic.com/v1/models"
	anthropicAPIVersion = "2023-06-01"
)

var (
	anthropicEndpoints     = []string{"chat", "messages"}
	anthropicKnownFeatures = []string{
		"streaming", "function_calling", "cost_tracking", "usage_tracking",
		"rate_limiting_headers", "system_messages", "vision", "tool_use",
		"context_caching", "computer_use", "structured_outputs", "json_mode",
		"xml_mode", "multiple_images", "document_understanding",
		"code_execution", "latex_rendering", "long_context",
		"prompt_caching", "batch_processing",
	}
)

type anthropicListing struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type anthropicDiscoverer struct {
	transport *transport.Client
	hasKey    bool
	baseURL   string
}

func newAnthropic() *anthropicDiscoverer {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	client := transport.New(&transport.HeaderAuth{Header: "x-api-key"}, apiKey).
		WithHeader("anthropic-version", anthropicAPIVersion)
	return &anthropicDiscoverer{
		transport: client,
		hasKey:    apiKey != "",
		baseURL:   anthropicModelsURL,
	}
}

func (d *anthropicDiscoverer) Provider() string { return "anthropic" }

// Discover builds the Anthropic capability document. The API's model listing
// adds per-model detail when reachable; the known feature set is always
// included since the listing carries no feature flags.
func (d *anthropicDiscoverer) Discover(ctx context.Context) (*catalog.CapabilityDocument, error) {
	doc := catalog.NewCapabilityDocument("anthropic")
	doc.Endpoints = append(doc.Endpoints, anthropicEndpoints...)
	doc.Features = reconcile.UnionStrings(doc.Features, anthropicKnownFeatures)

	if !d.hasKey {
		logging.Debug().Str("provider", "anthropic").Msg("No API key, using known capabilities")
		return finalize(doc), nil
	}

	resp, err := d.transport.Get(ctx, d.baseURL)
	if err != nil {
		logging.Warn().Err(err).Str("provider", "anthropic").Msg("Models request failed, using known capabilities")
		return finalize(doc), nil
	}
	defer func() { _ = resp.Body.Close() }()

	var listing anthropicListing
	if err := transport.DecodeResponse(resp, &listing); err != nil {
		logging.Warn().Err(err).Str("provider", "anthropic").Msg("Models response invalid, using known capabilities")
		return finalize(doc), nil
	}

	for _, m := range listing.Data {
		if m.ID == "" {
			continue
		}
		caps := DetectFromModelID("anthropic", m.ID)
		doc.Features = reconcile.UnionStrings(doc.Features, caps)
		doc.ModelCapabilities[m.ID] = catalog.AttributeRecord{
			"context_window":    200000,
			"max_output_tokens": 4096,
			"capabilities":      caps,
		}
	}

	return finalize(doc), nil
}
