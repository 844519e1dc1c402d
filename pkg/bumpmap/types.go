// Package bumpmap implements the Bump Table: an indexed, immutable
// collection of physical bumps loaded from a bump-map file in one of four
// container formats.
package bumpmap

import "math"

// BumpType is the functional role of a bump.
type BumpType string

const (
	DATA     BumpType = "DATA"
	ADDR     BumpType = "ADDR"
	CLK      BumpType = "CLK"
	SIDEBAND BumpType = "SIDEBAND"
	POWER    BumpType = "POWER"
	GND      BumpType = "GND"
	SPARE    BumpType = "SPARE"
	NONE     BumpType = "NONE"
)

// Bump is a single physical connection point on the interface.
type Bump struct {
	Name   string
	X, Y   float64
	Z      float64 // math.NaN() when the source record has no Z axis
	Type   BumpType
	Spare  bool
	Bundle *string // nil when the bump belongs to no bundle
}

// HasZ reports whether this bump carries a third coordinate axis.
func (b Bump) HasZ() bool {
	return !math.IsNaN(b.Z)
}

// rawRecord is the format-agnostic shape every loader produces before
// disambiguation and scaling are applied.
type rawRecord struct {
	Name   string  `yaml:"Name" json:"Name" xml:"Name"`
	X      float64 `yaml:"X" json:"X" xml:"X"`
	Y      float64 `yaml:"Y" json:"Y" xml:"Y"`
	Z      *float64 `yaml:"Z,omitempty" json:"Z,omitempty" xml:"Z,omitempty"`
	Type   string  `yaml:"Type" json:"Type" xml:"Type"`
	Spare  bool    `yaml:"Spare" json:"Spare" xml:"Spare"`
	Bundle string  `yaml:"Bundle,omitempty" json:"Bundle,omitempty" xml:"Bundle,omitempty"`
}
