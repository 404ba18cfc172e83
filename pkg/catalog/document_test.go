package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCopyIsDeep(t *testing.T) {
	doc := &Document{
		Provider:     "acme",
		DefaultModel: "m1",
		Models: map[string]AttributeRecord{
			"m1": {
				"pricing":      map[string]any{"input": 1.0},
				"capabilities": []string{"streaming"},
			},
		},
		Metadata: map[string]any{"last_updated": "2025-01-01T00:00:00Z"},
	}

	copied := doc.Copy()
	require.NotNil(t, copied)

	copied.Models["m1"]["pricing"].(map[string]any)["input"] = 99.0
	copied.Models["m1"]["capabilities"].([]string)[0] = "vision"
	copied.Metadata["last_updated"] = "changed"

	assert.Equal(t, 1.0, doc.Models["m1"]["pricing"].(map[string]any)["input"])
	assert.Equal(t, "streaming", doc.Models["m1"]["capabilities"].([]string)[0])
	assert.Equal(t, "2025-01-01T00:00:00Z", doc.Metadata["last_updated"])
}

func TestDocumentCopyNil(t *testing.T) {
	var doc *Document
	assert.Nil(t, doc.Copy())
}

func TestModelIDsSorted(t *testing.T) {
	doc := NewDocument("acme")
	doc.Models["c"] = AttributeRecord{}
	doc.Models["a"] = AttributeRecord{}
	doc.Models["b"] = AttributeRecord{}

	assert.Equal(t, []string{"a", "b", "c"}, doc.ModelIDs())
}

func TestAttributeRecordCopyNil(t *testing.T) {
	var rec AttributeRecord
	assert.Nil(t, rec.Copy())
}
