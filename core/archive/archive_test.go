package archive_test

import (
	"testing"

	"pak-index/core/archive"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Export(t *testing.T) {
	record := &archive.Record{
		Exports: []archive.Export{
			{Index: 1, Type: "A"},
			{Index: 4, Type: "B"},
		},
	}

	exp, ok := record.Export(4)
	assert.True(t, ok)
	assert.Equal(t, "B", exp.Type)

	_, ok = record.Export(2)
	assert.False(t, ok)

	assert.Equal(t, "A", record.Main().Type)
}

func TestRecord_NilSafety(t *testing.T) {
	var record *archive.Record
	assert.Nil(t, record.Main())

	_, ok := record.Export(0)
	assert.False(t, ok)

	var exp *archive.Export
	assert.Nil(t, exp.Field("DisplayName"))
}
