package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants_Distinct(t *testing.T) {
	all := []string{
		FieldFile, FieldSheet, FieldRow, FieldColumn, FieldCategory, FieldRule,
		FieldPartNumber, FieldDescription, FieldCollection, FieldProject,
		FieldOrder, FieldOperation, FieldCount, FieldSubtotal, FieldDelimiter,
		FieldOutputFile, FieldComponent,
	}

	seen := make(map[string]bool, len(all))
	for _, name := range all {
		assert.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate field name %q", name)
		seen[name] = true
	}
}
