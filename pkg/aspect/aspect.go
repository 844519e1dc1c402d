// Package aspect loads the renderer's Type -> (Color, Shape) table. It is
// a collaborator with a fixed interface (§6): a pure CSV loader, consumed
// only by pkg/render.
package aspect

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/jkim-oss/d2drepair/pkg/d2derr"
)

// Shape is one of the four shapes the renderer knows how to draw.
type Shape string

const (
	Circle   Shape = "Circle"
	Triangle Shape = "Triangle"
	Square   Shape = "Square"
	Line     Shape = "Line"
)

var validShapes = map[Shape]bool{Circle: true, Triangle: true, Square: true, Line: true}

// Entry is one Type -> (Color, Shape) row.
type Entry struct {
	Type  string
	Color string
	Shape Shape
}

// Table is Type -> Entry.
type Table struct {
	byType map[string]Entry
}

// LoadFile reads an aspect CSV file with header "Type,Color,Shape".
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("aspect: read %s: %w", path, err)
	}
	return Load(data)
}

// Load parses aspect CSV content.
func Load(data []byte) (*Table, error) {
	r := csv.NewReader(strings.NewReader(string(data)))
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("aspect: parse csv: %w: %w", err, d2derr.InputFormatError)
	}
	if len(rows) == 0 {
		return &Table{byType: map[string]Entry{}}, nil
	}

	header := rows[0]
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	t := &Table{byType: map[string]Entry{}}
	for _, row := range rows[1:] {
		e := Entry{}
		if i, ok := col["Type"]; ok && i < len(row) {
			e.Type = row[i]
		}
		if i, ok := col["Color"]; ok && i < len(row) {
			e.Color = row[i]
		}
		if i, ok := col["Shape"]; ok && i < len(row) {
			e.Shape = Shape(row[i])
		}
		if !validShapes[e.Shape] {
			return nil, fmt.Errorf("aspect: type %q: unsupported shape %q: %w", e.Type, e.Shape, d2derr.InputFormatError)
		}
		t.byType[e.Type] = e
	}
	return t, nil
}

// Lookup returns the aspect entry for a bump type name.
func (t *Table) Lookup(bumpType string) (Entry, bool) {
	e, ok := t.byType[bumpType]
	return e, ok
}
