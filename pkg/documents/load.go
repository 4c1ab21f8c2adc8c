package documents

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/procurelab/matchbook/pkg/errors"
)

// LoadFile reads a record file and normalizes it into a Document.
// The format is chosen by file extension: .json, .yaml, or .yml.
func LoadFile(path string) (Document, error) {
	raw, err := LoadRaw(path)
	if err != nil {
		return Document{}, err
	}
	return Normalize(raw)
}

// LoadRaw reads a record file into a Raw mapping without normalizing it.
func LoadRaw(path string) (Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var raw Raw
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.WrapParse("json", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.WrapParse("yaml", path, err)
		}
	default:
		return nil, errors.NewParseError(formatName(path), path,
			"unsupported record format (expected .json, .yaml, or .yml)", errors.ErrUnsupportedFormat)
	}
	return raw, nil
}

// ParseJSON parses JSON bytes into a Raw mapping. The extraction adapter
// uses it to decode structured model responses.
func ParseJSON(data []byte) (Raw, error) {
	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return raw, nil
}

// ParseYAML parses YAML bytes into a Raw mapping.
func ParseYAML(data []byte) (Raw, error) {
	var raw Raw
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return raw, nil
}

// formatName derives a format label from a path's extension.
func formatName(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}
