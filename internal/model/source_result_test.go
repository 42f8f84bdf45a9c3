package model

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure(t *testing.T) {
	r := Failure("checkthem", eris.New("connection refused"))
	assert.True(t, r.Failed())
	assert.Equal(t, "checkthem", r.Source)
	assert.Contains(t, r.Error, "connection refused")
}

func TestSourceResult_Failed(t *testing.T) {
	assert.False(t, SourceResult{Source: "pimeyes"}.Failed())
	assert.True(t, SourceResult{Source: "pimeyes", Error: "boom"}.Failed())
}

func TestDedupeRecords(t *testing.T) {
	records := []Record{
		{Name: "John Smith", Age: "42", Phones: []Phone{{Number: "555-0100"}}},
		{Name: "John Smith", Age: "42", Phones: []Phone{{Number: "555-0199"}}},
		{Name: "John Smith", Age: "67"},
		{Name: "Jane Smith", Age: "42"},
	}

	got := DedupeRecords(records)
	require.Len(t, got, 3)
	// First occurrence survives.
	assert.Equal(t, "555-0100", got[0].Phones[0].Number)
	assert.Equal(t, "67", got[1].Age)
	assert.Equal(t, "Jane Smith", got[2].Name)
}

func TestDedupeRecords_Empty(t *testing.T) {
	assert.Empty(t, DedupeRecords(nil))
}
