package notes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Encode serializes the list into the persisted array form.
func Encode(list []Note) (string, error) {
	if list == nil {
		list = []Note{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a persisted value. An empty value is an empty list. On a
// malformed value the returned list is empty and the error says why; callers
// loading at startup treat that as "no notes yet".
func Decode(raw string) ([]Note, error) {
	if strings.TrimSpace(raw) == "" {
		return []Note{}, nil
	}
	var list []Note
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []Note{}, fmt.Errorf("malformed note list: %w", err)
	}
	if list == nil {
		list = []Note{}
	}
	return list, nil
}
