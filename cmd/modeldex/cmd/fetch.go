package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modeldex/modeldex/internal/sources"
	_ "github.com/modeldex/modeldex/internal/sources/providers"
	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/constants"
	"github.com/modeldex/modeldex/pkg/logging"
	"github.com/modeldex/modeldex/pkg/reconcile"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [provider...]",
	Short: "Fetch model metadata from provider APIs",
	Long: `Fetch model metadata from provider APIs and merge it into the
per-provider YAML documents. Without arguments every registered provider
is fetched. A provider that fails does not stop the others.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	providers := args
	if len(providers) == 0 {
		providers = sources.Providers()
	}

	store := catalog.NewStore(documentDir())

	var failed int
	for _, provider := range providers {
		if err := fetchProvider(cmd.Context(), store, provider); err != nil {
			logging.Error().Err(err).Str("provider", provider).Msg("Fetch failed")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("fetch failed for %d of %d providers", failed, len(providers))
	}
	return nil
}

// fetchProvider fetches one provider's records and reconciles them into its
// document.
func fetchProvider(ctx context.Context, store *catalog.Store, provider string) error {
	source, err := sources.New(provider)
	if err != nil {
		return err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, constants.ProviderFetchTimeout)
	defer cancel()

	records, err := source.Fetch(fetchCtx)
	if err != nil {
		return err
	}

	existing, err := store.Load(provider)
	if err != nil {
		return err
	}

	merged, result := reconcile.Reconcile(existing, records, provider)
	if merged.DefaultModel == "" {
		if def := source.DefaultModel(); def != "" {
			if _, ok := merged.Models[def]; ok {
				merged.DefaultModel = def
			}
		}
	}

	if err := store.Save(merged); err != nil {
		return err
	}

	logging.Info().
		Str("provider", provider).
		Int("merged", result.Merged()).
		Int("added", len(result.Added)).
		Int("updated", len(result.Updated)).
		Int("unchanged", len(result.Unchanged)).
		Int("skipped", len(result.Skipped)).
		Msg("Reconciled provider document")

	for _, diag := range result.Skipped {
		fmt.Printf("  skipped %s\n", diag)
	}
	return nil
}
