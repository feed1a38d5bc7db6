package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RawConstDef represents one named kernel constant in the tables file.
type RawConstDef struct {
	Name  string `yaml:"name"`
	Value uint32 `yaml:"value"`
}

// RawTables represents the constant tables loaded from YAML.
type RawTables struct {
	Attributes   []RawConstDef `yaml:"attributes"`
	CtrlModeBits []RawConstDef `yaml:"ctrlmode_bits"`
	States       []RawConstDef `yaml:"states"`
}

// ParseTables parses the constant tables from YAML bytes.
func ParseTables(data []byte) (*RawTables, error) {
	var tables RawTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parsing tables: %w", err)
	}
	if err := validateTables(&tables); err != nil {
		return nil, err
	}
	return &tables, nil
}

// validateTables rejects empty sections and colliding entries.
func validateTables(tables *RawTables) error {
	sections := []struct {
		name string
		defs []RawConstDef
	}{
		{"attributes", tables.Attributes},
		{"ctrlmode_bits", tables.CtrlModeBits},
		{"states", tables.States},
	}

	for _, s := range sections {
		if len(s.defs) == 0 {
			return fmt.Errorf("section %s is empty", s.name)
		}
		names := make(map[string]bool)
		values := make(map[uint32]bool)
		for _, def := range s.defs {
			if def.Name == "" {
				return fmt.Errorf("section %s: entry without name", s.name)
			}
			if names[def.Name] {
				return fmt.Errorf("section %s: duplicate name %s", s.name, def.Name)
			}
			names[def.Name] = true
			if values[def.Value] {
				return fmt.Errorf("section %s: duplicate value %d", s.name, def.Value)
			}
			values[def.Value] = true
		}
	}
	return nil
}

// LoadTables loads and parses the constant tables from a file.
func LoadTables(path string) (*RawTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseTables(data)
}
