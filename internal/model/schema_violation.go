package model

// SchemaViolation describes one schema rule a document failed.
// It never carries the offending value.
type SchemaViolation struct {
	InstancePath string `json:"instancePath"`
	SchemaPath   string `json:"schemaPath"`
	Keyword      string `json:"keyword"`
	Message      string `json:"message"`
}
