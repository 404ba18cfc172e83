package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/modeldex/modeldex/pkg/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list [provider]",
	Short: "List providers and models",
	Long: `List the providers with a document in the store, or the models of
one provider.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, args []string) error {
	store := catalog.NewStore(documentDir())

	if len(args) == 1 {
		return listModels(store, args[0])
	}
	return listProviders(store)
}

func listProviders(store *catalog.Store) error {
	providers, err := store.Providers()
	if err != nil {
		return err
	}
	if len(providers) == 0 {
		fmt.Println("No provider documents found. Run `modeldex fetch` first.")
		return nil
	}

	title := cases.Title(language.English)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROVIDER\tMODELS\tDEFAULT")
	for _, provider := range providers {
		doc, err := store.Load(provider)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", title.String(provider), len(doc.Models), doc.DefaultModel)
	}
	return w.Flush()
}

func listModels(store *catalog.Store, provider string) error {
	doc, err := store.Load(provider)
	if err != nil {
		return err
	}
	if len(doc.Models) == 0 {
		fmt.Printf("No models recorded for %s.\n", provider)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tCONTEXT\tMAX OUTPUT")
	for _, id := range doc.ModelIDs() {
		record := doc.Models[id]
		marker := ""
		if id == doc.DefaultModel {
			marker = " (default)"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", id, marker,
			formatTokens(record["context_window"]),
			formatTokens(record["max_output_tokens"]))
	}
	return w.Flush()
}

// formatTokens renders a token-count attribute, which may be absent or
// carry any numeric type after a YAML round trip.
func formatTokens(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v", v)
}
