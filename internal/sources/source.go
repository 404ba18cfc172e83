// Package sources defines the fetcher interface for provider model metadata
// and a registry of the providers this tool knows how to fetch.
//
// A Source produces a batch of raw model records for one provider. How a
// record was obtained (live API call, local daemon, curated table) is the
// source's concern; the reconciler only requires that records are
// structurally valid attribute mappings.
package sources

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/modeldex/modeldex/pkg/errors"
)

// Source fetches model records for a single provider.
type Source interface {
	// Provider returns the canonical provider identifier.
	Provider() string

	// DefaultModel returns the provider's suggested default model, used by
	// callers as a fallback when the stored document has none. May be empty.
	DefaultModel() string

	// Fetch returns raw model records keyed by model ID. Values are expected
	// to be attribute mappings; the reconciler validates and skips anything
	// else.
	Fetch(ctx context.Context) (map[string]any, error)
}

// Constructor builds a Source.
type Constructor func() Source

var (
	mu       sync.RWMutex
	registry = make(map[string]Constructor)
)

// Register adds a source constructor for a provider. Called from provider
// package init functions.
func Register(provider string, fn Constructor) {
	mu.Lock()
	defer mu.Unlock()
	registry[provider] = fn
}

// New returns a source for the named provider.
func New(provider string) (Source, error) {
	mu.RLock()
	fn, ok := registry[provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", provider, errors.ErrUnknownProvider)
	}
	return fn(), nil
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a provider has a registered source.
func Has(provider string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[provider]
	return ok
}
