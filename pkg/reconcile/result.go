package reconcile

import "fmt"

// Diagnostic reports a record that could not be merged.
type Diagnostic struct {
	ModelID string
	Reason  string
}

// Error formats the diagnostic for reporting. Skipped records are not errors
// in the propagation sense; this is for human-readable summaries.
func (d Diagnostic) String() string {
	return fmt.Sprintf("model %q skipped: %s", d.ModelID, d.Reason)
}

// Result describes the outcome of a reconciliation.
type Result struct {
	// Provider is the canonical provider identifier the merge ran for.
	Provider string

	// Added lists model IDs that were not in the existing document.
	Added []string

	// Updated lists model IDs present in both whose record changed.
	Updated []string

	// Unchanged lists model IDs present in both whose record did not change.
	Unchanged []string

	// Skipped lists records that were not well-formed attribute mappings.
	// A skipped record never aborts the rest of the batch.
	Skipped []Diagnostic
}

// HasSkipped returns true if any records were skipped.
func (r *Result) HasSkipped() bool {
	return len(r.Skipped) > 0
}

// Merged returns the number of records merged (added or updated).
func (r *Result) Merged() int {
	return len(r.Added) + len(r.Updated)
}
