package bumpmap

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jkim-oss/d2drepair/pkg/d2derr"
)

// Scale holds the per-axis scale factors applied to raw coordinates before
// they are exposed as µm.
type Scale struct {
	X, Y float64
}

// DefaultScale is the identity scale.
var DefaultScale = Scale{X: 1, Y: 1}

// yamlDoc is the "mapping-of-lists" shape of the YAML bump-map container:
// one key per field, each holding a parallel-indexed list of values.
type yamlDoc struct {
	Name   []string  `yaml:"Name"`
	X      []float64 `yaml:"X"`
	Y      []float64 `yaml:"Y"`
	Z      []float64 `yaml:"Z"`
	Type   []string  `yaml:"Type"`
	Spare  []bool    `yaml:"Spare"`
	Bundle []string  `yaml:"Bundle"`
}

// xmlDoc wraps a record sequence for the XML container format:
// <BumpMap><Bump>...</Bump>...</BumpMap>.
type xmlDoc struct {
	XMLName xml.Name    `xml:"BumpMap"`
	Bumps   []rawRecord `xml:"Bump"`
}

// LoadFile reads a bump-map from path, dispatching on its extension, and
// returns a fully disambiguated, scaled Table.
func LoadFile(path string, scale Scale) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bumpmap: read %s: %w", path, err)
	}

	var records []rawRecord
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		records, err = parseYAML(data)
	case ".csv":
		records, err = parseCSV(data)
	case ".json":
		records, err = parseJSON(data)
	case ".xml":
		records, err = parseXML(data)
	default:
		return nil, fmt.Errorf("bumpmap: %s: unsupported extension %q: %w", path, ext, d2derr.InputFormatError)
	}
	if err != nil {
		return nil, err
	}

	return build(records, scale)
}

func parseYAML(data []byte) ([]rawRecord, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bumpmap: parse yaml: %w: %w", err, d2derr.InputFormatError)
	}
	n := len(doc.Name)
	records := make([]rawRecord, n)
	for i := 0; i < n; i++ {
		r := rawRecord{Name: doc.Name[i]}
		if i < len(doc.X) {
			r.X = doc.X[i]
		}
		if i < len(doc.Y) {
			r.Y = doc.Y[i]
		}
		if i < len(doc.Z) {
			z := doc.Z[i]
			r.Z = &z
		}
		if i < len(doc.Type) {
			r.Type = doc.Type[i]
		}
		if i < len(doc.Spare) {
			r.Spare = doc.Spare[i]
		}
		if i < len(doc.Bundle) {
			r.Bundle = doc.Bundle[i]
		}
		records[i] = r
	}
	return records, nil
}

func parseCSV(data []byte) ([]rawRecord, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("bumpmap: parse csv: %w: %w", err, d2derr.InputFormatError)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	get := func(row []string, name string) (string, bool) {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	records := make([]rawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := rawRecord{}
		if v, ok := get(row, "Name"); ok {
			r.Name = v
		}
		if v, ok := get(row, "X"); ok {
			r.X, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("bumpmap: parse csv X=%q: %w: %w", v, err, d2derr.InputFormatError)
			}
		}
		if v, ok := get(row, "Y"); ok {
			r.Y, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("bumpmap: parse csv Y=%q: %w: %w", v, err, d2derr.InputFormatError)
			}
		}
		if v, ok := get(row, "Z"); ok && v != "" {
			z, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				return nil, fmt.Errorf("bumpmap: parse csv Z=%q: %w: %w", v, perr, d2derr.InputFormatError)
			}
			r.Z = &z
		}
		if v, ok := get(row, "Type"); ok {
			r.Type = v
		}
		if v, ok := get(row, "Spare"); ok {
			r.Spare, _ = strconv.ParseBool(v)
		}
		if v, ok := get(row, "Bundle"); ok {
			r.Bundle = v
		}
		records = append(records, r)
	}
	return records, nil
}

func parseJSON(data []byte) ([]rawRecord, error) {
	var records []rawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("bumpmap: parse json: %w: %w", err, d2derr.InputFormatError)
	}
	return records, nil
}

func parseXML(data []byte) ([]rawRecord, error) {
	var doc xmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bumpmap: parse xml: %w: %w", err, d2derr.InputFormatError)
	}
	return doc.Bumps, nil
}

// build disambiguates names in file order, applies per-axis scaling, and
// assembles the final Table.
func build(records []rawRecord, scale Scale) (*Table, error) {
	seen := make(map[string]int, len(records))
	bumps := make([]Bump, 0, len(records))

	for _, rec := range records {
		name := rec.Name
		count := seen[name]
		seen[name] = count + 1
		if count > 0 {
			name = fmt.Sprintf("%s_%d", rec.Name, count)
		}

		b := Bump{
			Name:  name,
			X:     rec.X * scale.X,
			Y:     rec.Y * scale.Y,
			Type:  BumpType(strings.ToUpper(rec.Type)),
			Spare: rec.Spare,
		}
		if rec.Z != nil {
			b.Z = *rec.Z
		} else {
			b.Z = math.NaN()
		}
		if rec.Bundle != "" {
			bundle := rec.Bundle
			b.Bundle = &bundle
		}
		bumps = append(bumps, b)
	}

	return newTable(bumps), nil
}
