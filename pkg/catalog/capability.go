package catalog

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/modeldex/modeldex/pkg/constants"
	"github.com/modeldex/modeldex/pkg/errors"
	"github.com/modeldex/modeldex/pkg/logging"
)

// CapabilityDocument records what a provider's API can do: the endpoints it
// exposes, the features it supports, and per-model capability detail. It is
// persisted alongside model documents as <provider>_capabilities.yml.
type CapabilityDocument struct {
	Provider          string                     `yaml:"provider"`
	DiscoveredAt      string                     `yaml:"discovered_at,omitempty"`
	Endpoints         []string                   `yaml:"endpoints"`
	Features          []string                   `yaml:"features"`
	ModelCapabilities map[string]AttributeRecord `yaml:"model_capabilities"`
}

// NewCapabilityDocument creates an empty capability document for a provider.
func NewCapabilityDocument(provider string) *CapabilityDocument {
	return &CapabilityDocument{
		Provider:          provider,
		ModelCapabilities: make(map[string]AttributeRecord),
	}
}

// CapabilityPath returns the file path for a provider's capability document.
func (s *Store) CapabilityPath(provider string) string {
	return filepath.Join(s.Dir, provider+"_capabilities.yml")
}

// LoadCapabilities reads a provider's capability document. A missing file is
// not an error: the result is an empty document for that provider.
func (s *Store) LoadCapabilities(provider string) (*CapabilityDocument, error) {
	path := s.CapabilityPath(provider)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCapabilityDocument(provider), nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var doc CapabilityDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if doc.Provider == "" {
		doc.Provider = provider
	}
	if doc.ModelCapabilities == nil {
		doc.ModelCapabilities = make(map[string]AttributeRecord)
	}
	return &doc, nil
}

// SaveCapabilities writes a provider's capability document, stamping the
// discovery time.
func (s *Store) SaveCapabilities(doc *CapabilityDocument) error {
	if doc == nil || doc.Provider == "" {
		return &errors.ValidationError{
			Field:   "provider",
			Message: "capability document has no provider set",
		}
	}

	doc.DiscoveredAt = time.Now().UTC().Format(time.RFC3339)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.WrapParse("yaml", s.CapabilityPath(doc.Provider), err)
	}

	if err := os.MkdirAll(s.Dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", s.Dir, err)
	}

	path := s.CapabilityPath(doc.Provider)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logging.Debug().
		Str("provider", doc.Provider).
		Int("features", len(doc.Features)).
		Str("path", path).
		Msg("Saved capability document")

	return nil
}
