package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Value is a raw scalar configuration value. Any YAML scalar decodes into
// it verbatim, so numbers, percentages, and suffixed magnitudes all arrive
// as written; validation happens during Resolve. A YAML null decodes to
// the empty string, meaning not configured.
type Value string

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.Tag == "!!null" {
		*v = ""
		return nil
	}
	*v = Value(node.Value)
	return nil
}

// Match selects the interfaces a configuration file applies to.
type Match struct {
	// Name is an interface name, or a pattern in path.Match syntax
	// ("can*" matches can0, can1, ...).
	Name string `yaml:"name"`
}

// CANSection holds the raw CAN parameter values of one file. Absent keys
// stay empty and leave the corresponding parameter unconfigured.
type CANSection struct {
	Bitrate           Value `yaml:"bitrate"`
	SamplePoint       Value `yaml:"sample-point"`
	DataBitrate       Value `yaml:"data-bitrate"`
	DataSamplePoint   Value `yaml:"data-sample-point"`
	FDMode            Value `yaml:"fd-mode"`
	NonISO            Value `yaml:"non-iso"`
	TripleSampling    Value `yaml:"triple-sampling"`
	BusErrorReporting Value `yaml:"bus-error-reporting"`
	ListenOnly        Value `yaml:"listen-only"`
	Termination       Value `yaml:"termination"`
	Restart           Value `yaml:"restart"`
}

// File is one parsed configuration file.
type File struct {
	// Path is the file the configuration was loaded from, empty for
	// configurations parsed from memory.
	Path string `yaml:"-"`

	Match Match      `yaml:"match"`
	CAN   CANSection `yaml:"can"`
}

// Parse parses a configuration document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty configuration")
		}
		return nil, err
	}
	if f.Match.Name == "" {
		return nil, errors.New("match.name is required")
	}
	return &f, nil
}

// Load loads a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, sorted by file name.
// Other entries are skipped.
func LoadDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []*File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
		default:
			continue
		}

		f, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Matches reports whether the file applies to the named interface. An
// invalid pattern matches nothing.
func (f *File) Matches(name string) bool {
	if f.Match.Name == "" {
		return false
	}
	ok, err := path.Match(f.Match.Name, name)
	return err == nil && ok
}
