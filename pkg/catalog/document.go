// Package catalog defines the per-provider model configuration document and
// the YAML-backed store that persists it.
//
// A Document maps model identifiers to open-schema attribute records. The
// attribute set is deliberately not fixed: providers grow new attributes over
// time and hand-edited files may carry fields this tool has never seen, so
// records are plain maps rather than structs.
package catalog

import "sort"

// AttributeRecord is an open mapping from attribute name (context_window,
// max_output_tokens, pricing, capabilities, deprecation_date, ...) to a
// scalar, nested mapping, or sequence.
type AttributeRecord map[string]any

// Document is a provider's persisted model configuration.
type Document struct {
	Provider     string                     `yaml:"provider"`
	DefaultModel string                     `yaml:"default_model,omitempty"`
	Models       map[string]AttributeRecord `yaml:"models"`
	Metadata     map[string]any             `yaml:"metadata,omitempty"`
}

// NewDocument returns an empty document for the given provider.
func NewDocument(provider string) *Document {
	return &Document{
		Provider: provider,
		Models:   make(map[string]AttributeRecord),
	}
}

// Copy returns a deep copy of the document. Attribute values are copied
// recursively so the copy shares no mutable state with the original.
func (d *Document) Copy() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Provider:     d.Provider,
		DefaultModel: d.DefaultModel,
		Models:       make(map[string]AttributeRecord, len(d.Models)),
	}
	for id, rec := range d.Models {
		out.Models[id] = rec.Copy()
	}
	if d.Metadata != nil {
		out.Metadata = copyMap(d.Metadata)
	}
	return out
}

// ModelIDs returns the model identifiers in the document, sorted.
func (d *Document) ModelIDs() []string {
	ids := make([]string, 0, len(d.Models))
	for id := range d.Models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Copy returns a deep copy of the record.
func (r AttributeRecord) Copy() AttributeRecord {
	if r == nil {
		return nil
	}
	return AttributeRecord(copyMap(r))
}

// copyMap deep-copies nested maps and sequences; scalars are copied by value.
func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case AttributeRecord:
		return copyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
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
