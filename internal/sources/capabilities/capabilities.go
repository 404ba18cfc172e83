// Package capabilities discovers what provider APIs can do, combining live
// model listings with pattern tables and known feature sets. Results are
// persisted as capability documents alongside the model configs.
package capabilities

import (
	"context"
	"sort"
	"strings"

	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/errors"
	"github.com/modeldex/modeldex/pkg/reconcile"
)

// mapping associates a model ID substring with the features its presence
// implies. Patterns are checked in order so broader ones come first.
type mapping struct {
	pattern  string
	features []string
}

// featureMappings drives capability detection from model IDs.
var featureMappings = map[string][]mapping{
	"openai": {
		{"gpt", []string{"streaming", "function_calling", "system_messages", "json_mode"}},
		{"gpt-4", []string{"vision"}},
		{"gpt-4o", []string{"vision", "structured_outputs"}},
		{"o1", []string{"reasoning", "long_context"}},
		{"dall-e", []string{"image_generation"}},
		{"whisper", []string{"speech_recognition"}},
		{"tts", []string{"speech_synthesis"}},
		{"embedding", []string{"embeddings"}},
	},
	"anthropic": {
		{"claude", []string{"streaming", "function_calling", "system_messages", "json_mode", "xml_mode"}},
		{"claude-3", []string{"vision", "structured_outputs", "long_context"}},
		{"claude-3-5", []string{"computer_use", "latex_rendering", "document_understanding"}},
	},
	"gemini": {
		{"gemini", []string{"streaming", "function_calling", "system_messages", "json_mode", "vision"}},
		{"gemini-1.5", []string{"long_context", "video_understanding", "audio_input", "document_understanding"}},
		{"gemini-2", []string{"code_execution", "grounding"}},
	},
}

// DetectFromModelID returns the features implied by a model ID for a
// provider, sorted and deduplicated.
func DetectFromModelID(provider, modelID string) []string {
	lower := strings.ToLower(modelID)
	var features []string
	for _, m := range featureMappings[provider] {
		if strings.Contains(lower, m.pattern) {
			features = reconcile.UnionStrings(features, m.features)
		}
	}
	if features == nil {
		features = []string{}
	}
	return features
}

// Discoverer fetches a provider's capability document.
type Discoverer interface {
	Provider() string
	Discover(ctx context.Context) (*catalog.CapabilityDocument, error)
}

// Providers returns the providers capability discovery supports, sorted.
func Providers() []string {
	providers := []string{"openai", "anthropic", "gemini"}
	sort.Strings(providers)
	return providers
}

// NewDiscoverer returns the discoverer for a provider.
func NewDiscoverer(provider string) (Discoverer, error) {
	switch provider {
	case "openai":
		return newOpenAI(), nil
	case "anthropic":
		return newAnthropic(), nil
	case "gemini":
		return newGemini(), nil
	default:
		return nil, &errors.NotFoundError{Resource: "capability discoverer", ID: provider}
	}
}

// finalize sorts a document's unions so output is stable across runs.
func finalize(doc *catalog.CapabilityDocument) *catalog.CapabilityDocument {
	sort.Strings(doc.Endpoints)
	sort.Strings(doc.Features)
	return doc
}
