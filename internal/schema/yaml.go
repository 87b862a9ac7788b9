package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Marshal renders the schema as YAML.
func (s Schema) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return data, nil
}

// Unmarshal parses a YAML schema definition.
func Unmarshal(data []byte) (Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("parsing schema: %w", err)
	}
	return s, nil
}

// LoadFile reads a YAML schema definition from disk.
func LoadFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("reading schema %s: %w", path, err)
	}
	return Unmarshal(data)
}
