// Package models defines the data structures shared by the fluentout pipeline.
package models

import (
	"fmt"
	"strings"
)

// Kind classifies a quantity for x/y pairing.
type Kind string

const (
	// KindUnclassified marks a quantity no decision has been made for yet.
	KindUnclassified Kind = ""
	// KindExcluded marks a quantity that is not plotted.
	KindExcluded Kind = "none"
	// KindIndependent marks an x quantity.
	KindIndependent Kind = "xdata"
	// KindDependent marks a y quantity.
	KindDependent Kind = "ydata"
)

// ParseKind parses the stored or typed form of a kind.
// Both the long names (none/xdata/ydata) and their initials are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "n":
		return KindExcluded, nil
	case "xdata", "x":
		return KindIndependent, nil
	case "ydata", "y":
		return KindDependent, nil
	}
	return KindUnclassified, fmt.Errorf("unknown quantity kind %q", s)
}

// Classified reports whether a decision has been made for the kind.
func (k Kind) Classified() bool {
	return k != KindUnclassified
}

func (k Kind) String() string {
	if k == KindUnclassified {
		return "unclassified"
	}
	return string(k)
}

// Quantity is a named scalar channel of a report file.
type Quantity struct {
	// Name is the column name as it appears in the report header.
	Name string `json:"name"`
	// Kind is the x/y classification.
	Kind Kind `json:"kind"`
	// Description labels axes and matches quantities across catalogs.
	Description string `json:"description"`
	// Offset is added to every raw sample before scaling.
	Offset float64 `json:"offset"`
	// Scale multiplies the offset-adjusted sample.
	Scale float64 `json:"scale"`
	// Occurrences is the number of parsed files the name appeared in.
	Occurrences int `json:"occurrences,omitempty"`
}

// NewQuantity returns an unclassified quantity seen in one file.
func NewQuantity(name string) Quantity {
	return Quantity{
		Name:        name,
		Kind:        KindUnclassified,
		Scale:       1.0,
		Occurrences: 1,
	}
}

// Transform applies the linear offset+scale model to a raw sample.
func (q Quantity) Transform(raw float64) float64 {
	return q.Scale * (raw + q.Offset)
}

// SameSettings reports whether two quantities carry identical
// classification settings. Occurrences are not compared.
func (q Quantity) SameSettings(o Quantity) bool {
	return q.Name == o.Name &&
		q.Kind == o.Kind &&
		q.Description == o.Description &&
		q.Offset == o.Offset &&
		q.Scale == o.Scale
}
