package util

import (
	"errors"
	"strings"
)

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName normalizes an uploaded document's name so it is safe to
// embed in a storage key: separators become underscores, traversal sequences
// and blank names are rejected.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" || strings.Contains(s, "..") {
		return "", errInvalidFileName
	}
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s, nil
}
