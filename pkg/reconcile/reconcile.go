// Package reconcile merges freshly fetched model records for a provider into
// that provider's existing persisted configuration document.
//
// The merge preserves fields that exist only in the old document (manual
// additions), lets newly observed fields take precedence, and unions
// capability lists instead of overwriting them. Reconcile is a pure function
// over in-memory structures: it performs no I/O and never mutates its inputs,
// so reconciliations for different providers may run concurrently without
// coordination.
package reconcile

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/modeldex/modeldex/pkg/catalog"
	"github.com/modeldex/modeldex/pkg/logging"
)

// Reconcile merges new records into a copy of the existing document using the
// default policy. See ReconcileWithPolicy.
func Reconcile(existing *catalog.Document, records map[string]any, provider string) (*catalog.Document, *Result) {
	return ReconcileWithPolicy(existing, records, provider, DefaultPolicy())
}

// ReconcileWithPolicy merges new records into a copy of the existing document.
//
// Rules:
//   - a nil or empty existing document is treated as {provider, models: {}}
//   - models absent from existing are inserted verbatim
//   - models present in both are merged attribute-wise per the policy;
//     attributes present only in the existing record are retained
//   - models present only in existing are retained unchanged; a fetch
//     omission never deletes a previously known model
//   - the result's provider field is always the provider argument
//   - default_model is kept only while it references a merged model
//
// Records that are not attribute mappings (null, scalar, sequence) are
// skipped with a diagnostic and do not abort the rest of the batch.
func ReconcileWithPolicy(existing *catalog.Document, records map[string]any, provider string, policy *Policy) (*catalog.Document, *Result) {
	merged := existing.Copy()
	if merged == nil {
		merged = catalog.NewDocument(provider)
	}
	if merged.Models == nil {
		merged.Models = make(map[string]catalog.AttributeRecord)
	}

	result := &Result{Provider: provider}

	for _, modelID := range sortedKeys(records) {
		record, ok := asRecord(records[modelID])
		if !ok {
			diag := Diagnostic{
				ModelID: modelID,
				Reason:  fmt.Sprintf("record is %s, not an attribute mapping", describeValue(records[modelID])),
			}
			result.Skipped = append(result.Skipped, diag)
			logging.Warn().
				Str("provider", provider).
				Str("model", modelID).
				Str("reason", diag.Reason).
				Msg("Skipping malformed record")
			continue
		}

		current, exists := merged.Models[modelID]
		if !exists {
			// Union attributes are normalized on insert so a second pass over
			// the same batch is a no-op.
			merged.Models[modelID] = mergeRecord(nil, record, policy)
			result.Added = append(result.Added, modelID)
			continue
		}

		updated := mergeRecord(current, record, policy)
		if reflect.DeepEqual(updated, current) {
			result.Unchanged = append(result.Unchanged, modelID)
		} else {
			result.Updated = append(result.Updated, modelID)
		}
		merged.Models[modelID] = updated
	}

	merged.Provider = provider

	// Never leave a dangling default. Callers set fallback defaults; the
	// reconciler only preserves one that still resolves.
	if merged.DefaultModel != "" {
		if _, ok := merged.Models[merged.DefaultModel]; !ok {
			merged.DefaultModel = ""
		}
	}

	return merged, result
}

// mergeRecord merges a new record into an existing one attribute-wise.
// Attributes only in the existing record are kept; new values win except for
// union attributes, which combine both sides.
func mergeRecord(existing, incoming catalog.AttributeRecord, policy *Policy) catalog.AttributeRecord {
	out := existing.Copy()
	if out == nil {
		out = make(catalog.AttributeRecord, len(incoming))
	}

	for _, attr := range sortedRecordKeys(incoming) {
		value := incoming[attr]
		switch policy.ActionFor(attr) {
		case ActionUnion:
			out[attr] = unionTags(out[attr], value)
		default:
			out[attr] = copyAny(value)
		}
	}
	return out
}

// unionTags combines two capability-list values into a sorted, deduplicated
// slice of tags. Values that are not sequences contribute nothing.
func unionTags(existing, incoming any) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, v := range []any{existing, incoming} {
		for _, tag := range stringList(v) {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	if tags == nil {
		tags = []string{}
	}
	return tags
}

// UnionStrings merges two string slices into a sorted deduplicated slice.
// It is the same set semantics the reconciler applies to capability lists,
// exported for callers that union document-level tag lists.
func UnionStrings(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// stringList extracts string tags from a sequence value. YAML and JSON
// decoding produce []any; fetchers may hand in []string directly.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	default:
		return nil
	}
}

// asRecord reports whether a raw record value is a well-formed attribute
// mapping, converting the supported map shapes.
func asRecord(v any) (catalog.AttributeRecord, bool) {
	switch rec := v.(type) {
	case catalog.AttributeRecord:
		return rec, rec != nil
	case map[string]any:
		if rec == nil {
			return nil, false
		}
		return catalog.AttributeRecord(rec), true
	case map[any]any:
		if rec == nil {
			return nil, false
		}
		out := make(catalog.AttributeRecord, len(rec))
		for k, val := range rec {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// describeValue names a malformed record value for diagnostics.
func describeValue(v any) string {
	if v == nil {
		return "null"
	}
	return reflect.TypeOf(v).String()
}

// copyAny deep-copies an attribute value so merged documents share no state
// with the incoming records.
func copyAny(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyAny(item)
		}
		return out
	case catalog.AttributeRecord:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyAny(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyAny(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedRecordKeys(m catalog.AttributeRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
