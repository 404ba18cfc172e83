package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modeldex/modeldex/pkg/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate [provider...]",
	Short: "Validate provider documents",
	Long: `Check provider documents for structural problems: a default model
that is not in the model map, empty model IDs, and models without any
attributes. Without arguments every document in the store is checked.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	store := catalog.NewStore(documentDir())

	providers := args
	if len(providers) == 0 {
		var err error
		providers, err = store.Providers()
		if err != nil {
			return err
		}
	}
	if len(providers) == 0 {
		fmt.Println("No provider documents found.")
		return nil
	}

	var problems int
	for _, provider := range providers {
		doc, err := store.Load(provider)
		if err != nil {
			fmt.Printf("%s: %v\n", provider, err)
			problems++
			continue
		}
		for _, problem := range validateDocument(doc) {
			fmt.Printf("%s: %s\n", provider, problem)
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("found %d problems", problems)
	}
	fmt.Printf("Validated %d documents, no problems found.\n", len(providers))
	return nil
}

// validateDocument returns human-readable problems with a document.
func validateDocument(doc *catalog.Document) []string {
	var problems []string

	if doc.DefaultModel != "" {
		if _, ok := doc.Models[doc.DefaultModel]; !ok {
			problems = append(problems,
				fmt.Sprintf("default_model %q is not in the model map", doc.DefaultModel))
		}
	}

	for _, id := range doc.ModelIDs() {
		if id == "" {
			problems = append(problems, "model with empty ID")
			continue
		}
		if len(doc.Models[id]) == 0 {
			problems = append(problems, fmt.Sprintf("model %q has no attributes", id))
		}
	}

	return problems
}
