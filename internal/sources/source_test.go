package sources_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeldex/modeldex/internal/sources"
	_ "github.com/modeldex/modeldex/internal/sources/providers"
	"github.com/modeldex/modeldex/pkg/errors"
)

func TestRegistryListsAllProviders(t *testing.T) {
	assert.Equal(t, []string{
		"anthropic", "bedrock", "gemini", "groq",
		"ollama", "openai", "openrouter",
	}, sources.Providers())
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := sources.New("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownProvider)
	assert.Contains(t, err.Error(), "nope")
}

func TestHas(t *testing.T) {
	assert.True(t, sources.Has("openai"))
	assert.False(t, sources.Has("nope"))
}

func TestEverySourceReportsProviderAndDefault(t *testing.T) {
	for _, provider := range sources.Providers() {
		source, err := sources.New(provider)
		require.NoError(t, err)
		assert.Equal(t, provider, source.Provider())
		assert.NotEmpty(t, source.DefaultModel())
	}
}

func TestStaticSourcesReturnRecords(t *testing.T) {
	// These sources never hit the network without credentials configured.
	for _, provider := range []string{"anthropic", "bedrock"} {
		source, err := sources.New(provider)
		require.NoError(t, err)

		records, err := source.Fetch(context.Background())
		require.NoError(t, err)
		assert.NotEmpty(t, records)

		_, ok := records[source.DefaultModel()]
		assert.True(t, ok, "%s default model missing from records", provider)
	}
}
