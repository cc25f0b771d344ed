package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
)

// DefaultDelimiter separates the fields of a reference record.
const DefaultDelimiter = '?'

// ReferenceFields is the number of fields of a valid reference record.
const ReferenceFields = 5

// ParseReference parses one reference record: name, kind, description,
// offset and scale joined by delim. It reports false for records that do
// not have exactly five fields or carry a kind or number that cannot be read.
func ParseReference(line string, delim rune) (models.Quantity, bool) {
	fields := strings.Split(strings.TrimSpace(line), string(delim))
	if len(fields) != ReferenceFields {
		return models.Quantity{}, false
	}

	kind, err := models.ParseKind(fields[1])
	if err != nil {
		return models.Quantity{}, false
	}
	offset, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return models.Quantity{}, false
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
	if err != nil {
		return models.Quantity{}, false
	}

	return models.Quantity{
		Name:        fields[0],
		Kind:        kind,
		Description: fields[2],
		Offset:      offset,
		Scale:       scale,
	}, true
}

// ParseReferences parses every valid record of a reference file.
// Invalid records are dropped: besides a wrong field count, an unknown kind
// or a non-numeric offset or scale invalidates a record on purpose.
func ParseReferences(lines []string, delim rune) []models.Quantity {
	var refs []models.Quantity
	for _, line := range lines {
		if q, ok := ParseReference(line, delim); ok {
			refs = append(refs, q)
		}
	}
	return refs
}

// FormatReference renders a quantity as a reference record.
func FormatReference(q models.Quantity, delim rune) string {
	d := string(delim)
	return q.Name + d +
		string(q.Kind) + d +
		q.Description + d +
		FormatFloat(q.Offset) + d +
		FormatFloat(q.Scale)
}

// ReferenceName returns the name field of a raw reference line.
func ReferenceName(line string, delim rune) string {
	name, _, _ := strings.Cut(strings.TrimSpace(line), string(delim))
	return name
}

// FormatFloat renders a float with the fewest digits that read back exactly.
// Integral values keep one decimal place so stored numbers stay visibly real.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
