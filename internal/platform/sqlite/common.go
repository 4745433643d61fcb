package sqlite

import (
	"encoding/json"
	"strings"
)

// placeholders returns n comma-separated `?` placeholders for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// encodeStrings marshals a string slice to its JSON column form. A nil
// slice is stored as an empty array so scans never deal with NULL.
func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// decodeStrings unmarshals a JSON array column. Malformed content is
// treated as absent, never fatal.
func decodeStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
