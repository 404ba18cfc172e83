// Package bedrock provides a curated table of Amazon Bedrock foundation
// models. Bedrock's control-plane listing requires signed AWS credentials
// and carries no pricing, so the table is maintained by hand.
package bedrock

import (
	"context"

	"github.com/modeldex/modeldex/internal/sources"
	"github.com/modeldex/modeldex/pkg/catalog"
)

func init() {
	sources.Register("bedrock", func() sources.Source { return NewClient() })
}

// Client implements the sources.Source interface for Amazon Bedrock.
type Client struct{}

// NewClient creates a new Bedrock client.
func NewClient() *Client { return &Client{} }

// Provider implements sources.Source.
func (c *Client) Provider() string { return "bedrock" }

// DefaultModel implements sources.Source.
func (c *Client) DefaultModel() string { return "amazon.nova-lite-v1:0" }

// Fetch returns the curated Bedrock model records.
func (c *Client) Fetch(ctx context.Context) (map[string]any, error) {
	return map[string]any{
		"amazon.nova-micro-v1:0": catalog.AttributeRecord{
			"context_window":    128000,
			"max_output_tokens": 5120,
			"pricing":           map[string]any{"input": 0.035, "output": 0.14},
			"capabilities":      []string{"streaming", "function_calling"},
		},
		"amazon.nova-lite-v1:0": catalog.AttributeRecord{
			"context_window":    300000,
			"max_output_tokens": 5120,
			"pricing":           map[string]any{"input": 0.06, "output": 0.24},
			"capabilities":      []string{"streaming", "function_calling", "vision"},
		},
		"amazon.nova-pro-v1:0": catalog.AttributeRecord{
			"context_window":    300000,
			"max_output_tokens": 5120,
			"pricing":           map[string]any{"input": 0.80, "output": 3.20},
			"capabilities":      []string{"streaming", "function_calling", "vision"},
		},
		"anthropic.claude-3-5-sonnet-20241022-v2:0": catalog.AttributeRecord{
			"context_window":    200000,
			"max_output_tokens": 8192,
			"pricing":           map[string]any{"input": 3.00, "output": 15.00},
			"capabilities":      []string{"streaming", "function_calling", "vision"},
		},
		"anthropic.claude-3-5-haiku-20241022-v1:0": catalog.AttributeRecord{
			"context_window":    200000,
			"max_output_tokens": 8192,
			"pricing":           map[string]any{"input": 0.80, "output": 4.00},
			"capabilities":      []string{"streaming", "function_calling"},
		},
		"meta.llama3-2-90b-instruct-v1:0": catalog.AttributeRecord{
			"context_window":    128000,
			"max_output_tokens": 4096,
			"pricing":           map[string]any{"input": 0.72, "output": 0.72},
			"capabilities":      []string{"streaming", "vision"},
		},
		"meta.llama3-2-11b-instruct-v1:0": catalog.AttributeRecord{
			"context_window":    128000,
			"max_output_tokens": 4096,
			"pricing":           map[string]any{"input": 0.16, "output": 0.16},
			"capabilities":      []string{"streaming", "vision"},
		},
		"mistral.pixtral-large-2502-v1:0": catalog.AttributeRecord{
			"context_window":    128000,
			"max_output_tokens": 4096,
			"pricing":           map[string]any{"input": 2.00, "output": 6.00},
			"capabilities":      []string{"streaming", "function_calling", "vision"},
		},
	}, nil
}
