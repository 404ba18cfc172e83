// Package anthropic supplies Anthropic model metadata from a curated table.
// Anthropic has no public catalog endpoint suitable for pricing or context
// window discovery, so the table is maintained by hand and kept current via
// the aggregated-database sync.
package anthropic

import (
	"context"

	"github.com/modeldex/modeldex/internal/sources"
	"github.com/modeldex/modeldex/pkg/catalog"
)

func init() {
	sources.Register("anthropic", func() sources.Source { return NewClient() })
}

// Client implements the sources.Source interface for Anthropic.
type Client struct{}

// NewClient creates a new Anthropic client.
func NewClient() *Client { return &Client{} }

// Provider implements sources.Source.
func (c *Client) Provider() string { return "anthropic" }

// DefaultModel implements sources.Source.
func (c *Client) DefaultModel() string { return "claude-sonnet-4-20250514" }

// Fetch returns the curated Anthropic model table.
func (c *Client) Fetch(_ context.Context) (map[string]any, error) {
	claudeCaps := []string{"streaming", "function_calling", "vision"}

	return map[string]any{
		"claude-sonnet-4-20250514": catalog.AttributeRecord{
			"context_window":    200000,
			"max_output_tokens": 8192,
			"pricing":           map[string]any{"input": 3.00, "output": 15.00},
			"capabilities":      claudeCaps,
			"release_date":      "2025-05-14",
		},
		"claude-3-5-sonnet-20241022": catalog.AttributeRecord{
			"context_window":    200000,
			"max_output_tokens": 8192,
			"pricing":           map[string]any{"input": 3.00, "output": 15.00},
			"capabilities":      claudeCaps,
			"release_date":      "2024-10-22",
		},
		"claude-3-5-haiku-20241022": catalog.AttributeRecord{
			"context_window":    200000,
			"max_output_tokens": 8192,
			"pricing":           map[string]any{"input": 0.80, "output": 4.00},
			"capabilities":      claudeCaps,
			"release_date":      "2024-10-22",
		},
		"claude-3-opus-20240229": catalog.AttributeRecord{
			"context_window":    200000,
			"max_output_tokens": 4096,
			"pricing":           map[string]any{"input": 15.00, "output": 75.00},
			"capabilities":      claudeCaps,
			"release_date":      "2024-02-29",
		},
		"claude-3-sonnet-20240229": catalog.AttributeRecord{
			"context_window":    200000,
			"max_output_tokens": 4096,
			"pricing":           map[string]any{"input": 3.00, "output": 15.00},
			"capabilities":      claudeCaps,
			"release_date":      "2024-02-29",
		},
		"claude-3-haiku-20240307": catalog.AttributeRecord{
			"context_window":    200000,
			"max_output_tokens": 4096,
			"pricing":           map[string]any{"input": 0.25, "output": 1.25},
			"capabilities":      claudeCaps,
			"release_date":      "2024-03-07",
		},
	}, nil
}
