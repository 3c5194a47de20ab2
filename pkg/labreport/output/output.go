// Package output serializes extraction results.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Encoding names accepted by Marshal.
const (
	JSON = "json"
	YAML = "yaml"
)

// ToJSON serializes v to JSON. Cell values are written in their wire form,
// so embedded images appear as inline data markers.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ToYAML serializes v to YAML.
func ToYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal serializes v in the named encoding.
func Marshal(encoding string, v any, pretty bool) ([]byte, error) {
	switch encoding {
	case "", JSON:
		return ToJSON(v, pretty)
	case YAML:
		return ToYAML(v)
	}
	return nil, fmt.Errorf("unknown output format: %s", encoding)
}
