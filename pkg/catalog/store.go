package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/modeldex/modeldex/pkg/constants"
	"github.com/modeldex/modeldex/pkg/errors"
	"github.com/modeldex/modeldex/pkg/logging"
)

// Store loads and saves per-provider configuration documents as YAML files
// named <dir>/<provider>.yml.
type Store struct {
	Dir string
}

// NewStore creates a store rooted at dir. An empty dir uses the default
// configuration directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = constants.DefaultConfigDir
	}
	return &Store{Dir: dir}
}

// Path returns the file path for a provider's document.
func (s *Store) Path(provider string) string {
	return filepath.Join(s.Dir, provider+".yml")
}

// Load reads a provider's document. A missing file is not an error: the
// result is an empty document for that provider.
func (s *Store) Load(provider string) (*Document, error) {
	path := s.Path(provider)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(provider), nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if doc.Provider == "" {
		doc.Provider = provider
	}
	if doc.Models == nil {
		doc.Models = make(map[string]AttributeRecord)
	}
	return &doc, nil
}

// Save writes a provider's document, stamping the metadata block with the
// update time and source. The documents directory is created if needed.
func (s *Store) Save(doc *Document) error {
	if doc == nil || doc.Provider == "" {
		return &errors.ValidationError{
			Field:   "provider",
			Message: "document has no provider set",
		}
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["last_updated"] = time.Now().UTC().Format(time.RFC3339)
	doc.Metadata["update_source"] = constants.UpdateSource

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.WrapParse("yaml", s.Path(doc.Provider), err)
	}

	if err := os.MkdirAll(s.Dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", s.Dir, err)
	}

	path := s.Path(doc.Provider)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logging.Debug().
		Str("provider", doc.Provider).
		Int("models", len(doc.Models)).
		Str("path", path).
		Msg("Saved provider document")

	return nil
}

// Providers lists the providers that have a document in the store directory.
func (s *Store) Providers() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", s.Dir, err)
	}

	var providers []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yml") {
			continue
		}
		name = strings.TrimSuffix(name, ".yml")
		// Capability documents live alongside model documents.
		if strings.HasSuffix(name, "_capabilities") {
			continue
		}
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers, nil
}
