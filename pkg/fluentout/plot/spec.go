// Package plot builds plot specifications and renders them to images.
package plot

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
)

var (
	// ErrInvalidBounds indicates an axis range whose minimum is not below its maximum.
	ErrInvalidBounds = errors.New("minimum must be smaller than maximum")
	// ErrTooFewSeries indicates a combined plot request with fewer than two series.
	ErrTooFewSeries = errors.New("found less than 2 plottable datasets")
	// ErrMismatchedSeries indicates series whose quantity descriptions differ.
	ErrMismatchedSeries = errors.New("series quantities do not match")
)

// unitSuffix matches a "-[unit]" segment left after replacing spaces.
var unitSuffix = regexp.MustCompile(`-\[.*?\]`)

var pathUnsafe = strings.NewReplacer("/", "-", `\`, "-")

// ValidateBounds checks that b.Min is strictly below b.Max.
func ValidateBounds(b models.Bounds) error {
	if !b.Valid() {
		return fmt.Errorf("%w: minimum '%g', maximum '%g'", ErrInvalidBounds, b.Min, b.Max)
	}
	return nil
}

// Legend strips the y quantity name from a series label, first in its
// "-name" form and then bare.
func Legend(label, yName string) string {
	if yName == "" {
		return label
	}
	label = strings.ReplaceAll(label, "-"+yName, "")
	return strings.ReplaceAll(label, yName, "")
}

// IndividualName returns the file stem of a single-series plot.
func IndividualName(label, title string) string {
	if title == "" {
		return pathUnsafe.Replace(label)
	}
	return pathUnsafe.Replace(strings.ReplaceAll(label, " ", "-"))
}

// ComparisonTitle is the automatic title of a combined plot.
func ComparisonTitle(yDesc string) string {
	return "Comparison of " + yDesc
}

// CombinedName returns the file stem of a combined plot: the title, or the
// automatic comparison title, with spaces turned into dashes and
// "-[unit]" segments removed.
func CombinedName(title, yDesc string) string {
	name := title
	if name == "" {
		name = ComparisonTitle(yDesc)
	}
	name = strings.ReplaceAll(name, " ", "-")
	name = unitSuffix.ReplaceAllString(name, "")
	return pathUnsafe.Replace(name)
}

// Individual builds the plot of one series.
func Individual(s models.Series, title string, x, y models.Bounds) (models.PlotSpec, error) {
	if err := checkBounds(x, y); err != nil {
		return models.PlotSpec{}, err
	}
	return models.PlotSpec{
		Name:   IndividualName(s.Label, title),
		Title:  title,
		XLabel: s.X.Description,
		YLabel: s.Y.Description,
		Series: []models.PlotSeries{{
			Legend:  s.Label,
			XValues: s.XValues,
			YValues: s.YValues,
		}},
		XRange: x,
		YRange: y,
	}, nil
}

// Combined builds one plot drawing all members on shared axes. Axis labels
// come from the first member.
func Combined(members []models.Series, name, title string, x, y models.Bounds) (models.PlotSpec, error) {
	if len(members) < 2 {
		return models.PlotSpec{}, fmt.Errorf("%w: got %d", ErrTooFewSeries, len(members))
	}
	if err := checkBounds(x, y); err != nil {
		return models.PlotSpec{}, err
	}
	spec := models.PlotSpec{
		Name:   name,
		Title:  title,
		XLabel: members[0].X.Description,
		YLabel: members[0].Y.Description,
		XRange: x,
		YRange: y,
	}
	for _, s := range members {
		spec.Series = append(spec.Series, models.PlotSeries{
			Legend:  Legend(s.Label, s.Y.Name),
			XValues: s.XValues,
			YValues: s.YValues,
		})
	}
	return spec, nil
}

// Compatible reports whether two series can share axes: their x and y
// descriptions must match.
func Compatible(a, b models.Series) bool {
	return a.X.Description == b.X.Description && a.Y.Description == b.Y.Description
}

func checkBounds(x, y models.Bounds) error {
	if err := ValidateBounds(x); err != nil {
		return fmt.Errorf("x axis: %w", err)
	}
	if err := ValidateBounds(y); err != nil {
		return fmt.Errorf("y axis: %w", err)
	}
	return nil
}

// Widen turns a zero-width range, as computed for constant samples, into a
// drawable one.
func Widen(b models.Bounds) models.Bounds {
	if b.Min != b.Max {
		return b
	}
	pad := 0.5
	if b.Min != 0 {
		pad = abs(b.Min) * 0.05
	}
	return models.Bounds{Min: b.Min - pad, Max: b.Min + pad}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
