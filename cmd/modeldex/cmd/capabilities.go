package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modeldex/modeldex/internal/sources/capabilities"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/logging"
)

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities [provider...]",
	Short: "Discover provider API capabilities",
	Long: `Query provider APIs for their endpoints, feature support, and
per-model capabilities, and write the results as <provider>_capabilities.yml
documents. Without arguments every supported provider is queried.`,
	RunE: runCapabilities,
}

func init() {
	rootCmd.AddCommand(capabilitiesCmd)
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	providers := args
	if len(providers) == 0 {
		providers = capabilities.Providers()
	}

	store := catalog.NewStore(documentDir())

	var failed int
	for _, provider := range providers {
		discoverer, err := capabilities.NewDiscoverer(provider)
		if err != nil {
			logging.Error().Err(err).Str("provider", provider).Msg("Discovery unavailable")
			failed++
			continue
		}

		doc, err := discoverer.Discover(cmd.Context())
		if err != nil {
			logging.Error().Err(err).Str("provider", provider).Msg("Discovery failed")
			failed++
			continue
		}

		if err := store.SaveCapabilities(doc); err != nil {
			logging.Error().Err(err).Str("provider", provider).Msg("Save failed")
			failed++
			continue
		}

		logging.Info().
			Str("provider", provider).
			Int("endpoints", len(doc.Endpoints)).
			Int("features", len(doc.Features)).
			Int("models", len(doc.ModelCapabilities)).
			Msg("Discovered capabilities")
	}

	if failed > 0 {
		return fmt.Errorf("discovery failed for %d of %d providers", failed, len(providers))
	}
	return nil
}
