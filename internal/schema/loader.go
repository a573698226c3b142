package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML bundle from the given path.
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file %s: %w", path, err)
	}

	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return b, nil
}

// Parse parses YAML data into a Bundle.
func Parse(data []byte) (*Bundle, error) {
	var b Bundle

	err := yaml.Unmarshal(data, &b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definitions YAML: %w", err)
	}

	applyDefaults(&b)

	return &b, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(b *Bundle) {
	if b.Version == "" {
		b.Version = "1"
	}
}

// Marshal serializes a Bundle to YAML.
func Marshal(b *Bundle) ([]byte, error) {
	return yaml.Marshal(b)
}

// WriteFile writes a Bundle to the given path.
func WriteFile(b *Bundle, path string) error {
	data, err := Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal definitions: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write definitions file %s: %w", path, err)
	}

	return nil
}
