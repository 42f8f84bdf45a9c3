package model

// Query holds the person identifiers a search starts from. All fields are
// optional, but at least one identifier must be set before a search begins.
// A working copy is threaded through the phases and may gain a Name
// discovered by face-search enrichment.
type Query struct {
	Name     string `json:"name,omitempty"`
	Image    string `json:"image,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Username string `json:"username,omitempty"`
	Address  string `json:"address,omitempty"`
	Location string `json:"location,omitempty"`
}

// HasIdentifier reports whether the query carries at least one searchable
// identifier. Location alone narrows other identifiers but cannot start a
// search by itself.
func (q Query) HasIdentifier() bool {
	return q.Name != "" || q.Image != "" || q.Email != "" ||
		q.Phone != "" || q.Username != "" || q.Address != ""
}

// HasAny reports whether any of the given fields is set.
func (q Query) HasAny(fields ...QueryField) bool {
	for _, f := range fields {
		if q.Field(f) != "" {
			return true
		}
	}
	return false
}

// QueryField names one identifier field of a Query.
type QueryField string

// Identifier fields. These double as adapter capability names.
const (
	FieldName     QueryField = "name"
	FieldImage    QueryField = "image"
	FieldEmail    QueryField = "email"
	FieldPhone    QueryField = "phone"
	FieldUsername QueryField = "username"
	FieldAddress  QueryField = "address"
)

// Field returns the value of the named identifier field.
func (q Query) Field(f QueryField) string {
	switch f {
	case FieldName:
		return q.Name
	case FieldImage:
		return q.Image
	case FieldEmail:
		return q.Email
	case FieldPhone:
		return q.Phone
	case FieldUsername:
		return q.Username
	case FieldAddress:
		return q.Address
	}
	return ""
}
