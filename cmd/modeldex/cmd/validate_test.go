package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modeldex/modeldex/pkg/catalog"
)

func TestValidateDocumentClean(t *testing.T) {
	doc := catalog.NewDocument("acme")
	doc.DefaultModel = "m1"
	doc.Models["m1"] = catalog.AttributeRecord{"context_window": 4096}

	assert.Empty(t, validateDocument(doc))
}

func TestValidateDocumentDanglingDefault(t *testing.T) {
	doc := catalog.NewDocument("acme")
	doc.DefaultModel = "ghost"
	doc.Models["m1"] = catalog.AttributeRecord{"context_window": 4096}

	problems := validateDocument(doc)
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "ghost")
}

func TestValidateDocumentEmptyModels(t *testing.T) {
	doc := catalog.NewDocument("acme")
	doc.Models[""] = catalog.AttributeRecord{"context_window": 4096}
	doc.Models["bare"] = catalog.AttributeRecord{}

	problems := validateDocument(doc)
	assert.Len(t, problems, 2)
}
