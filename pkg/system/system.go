// Package system loads the system description: the roster of dies and
// interfaces that composes per-interface yield into system yield (§4.G
// system mode, §6).
package system

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jkim-oss/d2drepair/pkg/d2derr"
)

// Resources holds the physical-area bookkeeping used by the surface-cost
// figure (§4.G system mode).
type Resources struct {
	Surface float64 `yaml:"Surface"`
}

// Interface is one die-to-die interface entry in the system description.
type Interface struct {
	DieNumber       int       `yaml:"Die_Number"`
	InterfaceNumber int       `yaml:"Interface_Number"`
	Ressources      Resources `yaml:"Ressources"`
	BumpMapFile     string    `yaml:"BumpMap_file_name"`
	IRLFile         string    `yaml:"IRL_file_name"`
}

// Description is die id -> Interface, in file order.
type Description struct {
	order []string
	byDie map[string]Interface
}

// LoadFile reads a system description YAML file.
func LoadFile(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("system: read %s: %w", path, err)
	}
	return Load(data)
}

// Load parses a system description document: die id -> {Die_Number,
// Interface_Number, Ressources:{Surface}, BumpMap_file_name, IRL_file_name}.
func Load(data []byte) (*Description, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("system: parse yaml: %w: %w", err, d2derr.InputFormatError)
	}
	if len(root.Content) == 0 {
		return &Description{byDie: map[string]Interface{}}, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("system: top level is not a mapping: %w", d2derr.InputFormatError)
	}

	desc := &Description{byDie: map[string]Interface{}}
	for i := 0; i < len(top.Content); i += 2 {
		dieID := top.Content[i].Value
		var iface Interface
		if err := top.Content[i+1].Decode(&iface); err != nil {
			return nil, fmt.Errorf("system: decode die %q: %w: %w", dieID, err, d2derr.InputFormatError)
		}
		desc.order = append(desc.order, dieID)
		desc.byDie[dieID] = iface
	}
	return desc, nil
}

// Dies returns die ids in file order.
func (d *Description) Dies() []string { return d.order }

// Interface returns the Interface entry for a die id.
func (d *Description) Interface(dieID string) (Interface, bool) {
	iface, ok := d.byDie[dieID]
	return iface, ok
}

// Interfaces returns every interface entry in file order.
func (d *Description) Interfaces() []Interface {
	out := make([]Interface, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byDie[id])
	}
	return out
}
