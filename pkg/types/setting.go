package types

// Setting is one key-value application preference. Keys are opaque
// caller-defined strings; the store reserves no namespace.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
