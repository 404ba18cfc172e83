// Package providers registers every provider fetcher. Importing it for side
// effects makes the full set available through the sources registry.
package providers

import (
	_ "github.com/modeldex/modeldex/internal/sources/providers/anthropic"
	_ "github.com/modeldex/modeldex/internal/sources/providers/bedrock"
	_ "github.com/modeldex/modeldex/internal/sources/providers/gemini"
	_ "github.com/modeldex/modeldex/internal/sources/providers/groq"
	_ "github.com/modeldex/modeldex/internal/sources/providers/ollama"
	_ "github.com/modeldex/modeldex/internal/sources/providers/openai"
	_ "github.com/modeldex/modeldex/internal/sources/providers/openrouter"
)
