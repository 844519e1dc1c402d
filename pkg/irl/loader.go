package irl

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jkim-oss/d2drepair/pkg/d2derr"
)

// LoadFile reads an IRL file and returns every repair chain flattened into
// RouteRows. Unlike the nested-yaml loader this format was distilled from,
// every chain is loaded — not just the first — because the early return
// inside the outer "for RepairChain in RepairChains" loop was a defect in
// the source, not an intended behavior.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("irl: read %s: %w", path, err)
	}
	return Load(data)
}

// Load parses raw IRL content (a leading '#' comment block is stripped
// first, per §6) into a Table.
func Load(data []byte) (*Table, error) {
	clean := stripComments(data)

	var root yaml.Node
	if err := yaml.Unmarshal(clean, &root); err != nil {
		return nil, fmt.Errorf("irl: parse yaml: %w: %w", err, d2derr.InputFormatError)
	}
	if len(root.Content) == 0 {
		return newTable(nil), nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("irl: top level is not a mapping: %w", d2derr.InputFormatError)
	}

	var rows []RouteRow
	for ci := 0; ci < len(top.Content); ci += 2 {
		chainName := top.Content[ci].Value
		chainNode := top.Content[ci+1]
		if chainNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("irl: chain %q is not a mapping: %w", chainName, d2derr.InputFormatError)
		}

		for fi := 0; fi < len(chainNode.Content); fi += 2 {
			portNode := chainNode.Content[fi+1]
			if portNode.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("irl: functional port in chain %q is not a mapping: %w", chainName, d2derr.InputFormatError)
			}

			signal, ok := mappingGet(portNode, "Name")
			if !ok {
				return nil, fmt.Errorf("irl: functional port in chain %q missing Name: %w", chainName, d2derr.InputFormatError)
			}
			signalName := signal.Value

			for pi := 0; pi < len(portNode.Content); pi += 2 {
				key := portNode.Content[pi]
				if key.Value == "Name" {
					continue
				}
				physical := portNode.Content[pi+1]

				row := RouteRow{
					Signal:      signalName,
					RepairChain: chainName,
					Status:      RowStatus(key.Value),
				}
				if to, ok := mappingGet(physical, "To"); ok {
					row.Connection = to.Value
				}
				if control, ok := mappingGet(physical, "Control"); ok {
					if mux, ok := mappingGet(control, "Mux"); ok {
						row.Mux = mux.Value
					}
					if sel, ok := mappingGet(control, "Sel"); ok {
						row.Sel = sel.Value
					}
				}
				rows = append(rows, row)
			}
		}
	}

	return newTable(rows), nil
}

// mappingGet looks up key in a yaml MappingNode, returning its value node.
func mappingGet(node *yaml.Node, key string) (*yaml.Node, bool) {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1], true
		}
	}
	return nil, false
}

// stripComments removes leading '#' lines, matching §6's "a leading
// comment block is permitted and must be stripped before parsing".
func stripComments(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return []byte(strings.TrimSpace(strings.Join(kept, "\n")))
}
