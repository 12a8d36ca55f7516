package domain

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the document format from a file extension.
// Anything that is not .yaml/.yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a document. Decoding is lenient: uniqueness violations are
// left for Validate to report.
func Decode(data []byte, format Format) (StudioDocument, error) {
	var doc StudioDocument
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return StudioDocument{}, fmt.Errorf("decode yaml document: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return StudioDocument{}, fmt.Errorf("decode json document: %w", err)
		}
	}
	return doc, nil
}

// Encode renders a document as indented JSON.
func Encode(doc StudioDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}
