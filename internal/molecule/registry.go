package molecule

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed molecules.yaml
var catalogYAML []byte

// Config describes one supported molecule: geometry, electronic
// properties, and display text.
type Config struct {
	Name        string   `yaml:"name" json:"name"`
	FullName    string   `yaml:"full_name" json:"full_name"`
	Description string   `yaml:"description" json:"description"`
	Theory      string   `yaml:"theory" json:"theory"`
	Geometry    Geometry `yaml:"geometry" json:"geometry"`
	Charge      int      `yaml:"charge" json:"charge"`
	Spin        int      `yaml:"spin" json:"spin"`
	Basis       string   `yaml:"basis" json:"basis"`
	Electrons   int      `yaml:"electrons" json:"electrons"`
	BondLength  float64  `yaml:"bond_length" json:"bond_length"`
}

// Atoms returns the number of atoms in the geometry.
func (c *Config) Atoms() int {
	return len(c.Geometry)
}

// Clone returns a deep copy, so an engine can mutate geometry during a
// scan without touching the registry's copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Geometry = c.Geometry.Clone()
	return &out
}

// UnknownMoleculeError indicates a lookup for a molecule not in the catalog.
type UnknownMoleculeError struct {
	Name string
}

func (e *UnknownMoleculeError) Error() string {
	return "unknown molecule: " + e.Name
}

// Registry is the static molecule catalog.
type Registry struct {
	byName map[string]*Config
}

type catalogFile struct {
	Molecules []*Config `yaml:"molecules"`
}

// NewRegistry builds the registry from the embedded catalog.
func NewRegistry() (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse molecule catalog: %w", err)
	}

	byName := make(map[string]*Config, len(file.Molecules))
	for _, m := range file.Molecules {
		if m.Name == "" {
			return nil, fmt.Errorf("molecule catalog entry missing name")
		}
		if len(m.Geometry) == 0 {
			return nil, fmt.Errorf("molecule %s has no geometry", m.Name)
		}
		if m.Electrons <= 0 || m.Electrons%2 != 0 {
			return nil, fmt.Errorf("molecule %s: electron count must be a positive even number, got %d", m.Name, m.Electrons)
		}
		if _, exists := byName[m.Name]; exists {
			return nil, fmt.Errorf("duplicate molecule name: %s", m.Name)
		}
		byName[m.Name] = m
	}
	return &Registry{byName: byName}, nil
}

// Get looks up a molecule by name, returning a defensive copy.
func (r *Registry) Get(name string) (*Config, error) {
	m, ok := r.byName[name]
	if !ok {
		return nil, &UnknownMoleculeError{Name: name}
	}
	return m.Clone(), nil
}

// List returns all catalog entries sorted by name.
func (r *Registry) List() []*Config {
	out := make([]*Config, 0, len(r.byName))
	for _, m := range r.byName {
		out = append(out, m.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
