package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// now returns the current UTC time as an ISO timestamp.
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// marshal encodes v for storage in a JSON column. An empty slice is stored as
// "[]" rather than "null" so scans round-trip cleanly.
func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal column: %w", err)
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}

// unmarshal decodes a JSON column into v.
func unmarshal(data string, v any) error {
	if data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("unmarshal column: %w", err)
	}
	return nil
}
