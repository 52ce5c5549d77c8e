package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"insurecost/internal/common/fsutil"
)

// Load reads a pipeline document based on its extension and compiles it.
// Supports: .json, .yaml/.yml, .toml. Unknown fields are rejected.
func Load(path string) (*Pipeline, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}

// ReadDocument decodes the document at path without compiling it.
func ReadDocument(path string) (Document, error) {
	var doc Document
	if path == "" {
		return doc, fmt.Errorf("empty model path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return doc, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return doc, err
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return doc, fmt.Errorf("decode json: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return doc, fmt.Errorf("decode yaml: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return doc, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return doc, fmt.Errorf("unsupported model extension: %s", ext)
	}
	return doc, nil
}
