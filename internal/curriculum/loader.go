package curriculum

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the on-disk YAML layout of a curriculum file.
type document struct {
	Subject    string        `yaml:"subject"`
	Year       int           `yaml:"year"`
	Categories []RawCategory `yaml:"categories"`
}

// Parse decodes a YAML curriculum document and builds it.
func Parse(data []byte) (*Curriculum, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode curriculum: %w", err)
	}
	return Build(doc.Subject, doc.Year, doc.Categories)
}

// LoadFile reads and parses a curriculum document from disk.
func LoadFile(path string) (*Curriculum, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
