package service

import (
	"fmt"
	"os"

	"rorkforge/internal/domain"
)

// LoadDocumentFile reads a JSON or YAML document, picking the format from
// the file extension.
func LoadDocumentFile(path string) (domain.StudioDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.StudioDocument{}, fmt.Errorf("read document: %w", err)
	}
	return domain.Decode(data, domain.FormatForPath(path))
}
