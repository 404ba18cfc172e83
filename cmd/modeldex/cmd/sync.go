package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/modeldex/modeldex/internal/sources/litellm"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/constants"
	"github.com/modeldex/modeldex/pkg/logging"
	"github.com/modeldex/modeldex/pkg/reconcile"
)

var syncURL string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync model metadata from the LiteLLM database",
	Long: `Download the LiteLLM community pricing database and merge its
entries into the per-provider YAML documents. Entries for providers
modeldex does not track are ignored.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncURL, "url", litellm.DatabaseURL, "database location")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), constants.SyncTimeout)
	defer cancel()

	syncer := litellm.NewSyncerWithURL(syncURL)
	grouped, err := syncer.Fetch(ctx)
	if err != nil {
		return err
	}

	store := catalog.NewStore(documentDir())

	var failed int
	for _, provider := range sortedProviders(grouped) {
		records := grouped[provider]

		existing, err := store.Load(provider)
		if err != nil {
			logging.Error().Err(err).Str("provider", provider).Msg("Load failed")
			failed++
			continue
		}

		merged, result := reconcile.Reconcile(existing, records, provider)
		if err := store.Save(merged); err != nil {
			logging.Error().Err(err).Str("provider", provider).Msg("Save failed")
			failed++
			continue
		}

		logging.Info().
			Str("provider", provider).
			Int("merged", result.Merged()).
			Int("added", len(result.Added)).
			Int("updated", len(result.Updated)).
			Int("unchanged", len(result.Unchanged)).
			Msg("Synced provider document")
	}

	if failed > 0 {
		return fmt.Errorf("sync failed for %d providers", failed)
	}
	return nil
}

func sortedProviders(grouped map[string]map[string]any) []string {
	providers := make([]string, 0, len(grouped))
	for provider := range grouped {
		providers = append(providers, provider)
	}
	sort.Strings(providers)
	return providers
}
