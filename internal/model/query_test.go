package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_HasIdentifier(t *testing.T) {
	assert.False(t, Query{}.HasIdentifier())
	assert.True(t, Query{Name: "John Smith"}.HasIdentifier())
	assert.True(t, Query{Image: "https://example.com/face.jpg"}.HasIdentifier())
	assert.True(t, Query{Email: "a@b.com"}.HasIdentifier())
	assert.True(t, Query{Phone: "555-0100"}.HasIdentifier())
	assert.True(t, Query{Username: "jsmith"}.HasIdentifier())
	assert.True(t, Query{Address: "1 Main St"}.HasIdentifier())
}

func TestQuery_HasIdentifier_LocationAlone(t *testing.T) {
	// Location narrows other identifiers but cannot start a search.
	assert.False(t, Query{Location: "Austin, TX"}.HasIdentifier())
}

func TestQuery_HasAny(t *testing.T) {
	q := Query{Email: "a@b.com"}
	assert.True(t, q.HasAny(FieldName, FieldEmail))
	assert.False(t, q.HasAny(FieldName, FieldPhone))
	assert.False(t, q.HasAny())
}

func TestQuery_Field(t *testing.T) {
	q := Query{
		Name:     "John Smith",
		Image:    "img",
		Email:    "a@b.com",
		Phone:    "555",
		Username: "jsmith",
		Address:  "1 Main St",
	}
	assert.Equal(t, "John Smith", q.Field(FieldName))
	assert.Equal(t, "img", q.Field(FieldImage))
	assert.Equal(t, "a@b.com", q.Field(FieldEmail))
	assert.Equal(t, "555", q.Field(FieldPhone))
	assert.Equal(t, "jsmith", q.Field(FieldUsername))
	assert.Equal(t, "1 Main St", q.Field(FieldAddress))
	assert.Equal(t, "", q.Field(QueryField("bogus")))
}
