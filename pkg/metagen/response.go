package metagen

// StructuredResponse is the single-field object the formatting stage must
// produce.
type StructuredResponse[T any] struct {
	Response T `json:"response"`
}

// schemaFor returns the value the JSON schema of kind is reflected from.
func schemaFor(kind FieldKind) any {
	if kind.IsList() {
		return &StructuredResponse[[]string]{}
	}
	return &StructuredResponse[string]{}
}
