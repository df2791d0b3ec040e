// Package catalog loads the reference data the dashboard is started with:
// the brand and program-type lists offered by the form, and the seed programs.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stefanpenner/brandpilot/pkg/program"
	"gopkg.in/yaml.v3"
)

// FileName is the catalogue file name inside the data directory.
const FileName = "catalog.yaml"

//go:embed seed.yaml
var seedYAML []byte

// Catalog is the externally supplied reference data.
type Catalog struct {
	Brands       []string          `yaml:"brands" json:"brands"`
	ProgramTypes []string          `yaml:"program_types" json:"program_types"`
	Programs     []program.Program `yaml:"programs,omitempty" json:"programs,omitempty"`
}

// Default returns the built-in catalogue.
func Default() *Catalog {
	c, err := Parse(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes and validates a catalogue document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads the catalogue at path. A missing file yields the default catalogue.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating the parent directory if needed.
func Save(path string, c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serializing catalog YAML: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the reference lists and every seed program.
func (c *Catalog) Validate() error {
	if err := checkList("brands", c.Brands); err != nil {
		return err
	}
	if err := checkList("program_types", c.ProgramTypes); err != nil {
		return err
	}
	for i := range c.Programs {
		if err := c.Programs[i].Validate(); err != nil {
			return fmt.Errorf("catalog program %q: %w", c.Programs[i].ID, err)
		}
	}
	return nil
}

func checkList(name string, items []string) error {
	if len(items) == 0 {
		return fmt.Errorf("catalog %s: list is empty", name)
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return fmt.Errorf("catalog %s: blank entry", name)
		}
		if item == program.AllBrands && name == "brands" {
			return fmt.Errorf("catalog brands: %q is reserved for the brand filter", item)
		}
		if seen[item] {
			return fmt.Errorf("catalog %s: duplicate entry %q", name, item)
		}
		seen[item] = true
	}
	return nil
}

// HasBrand reports whether brand is in the reference list.
func (c *Catalog) HasBrand(brand string) bool {
	return contains(c.Brands, brand)
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
