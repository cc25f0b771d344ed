package catalog

import "github.com/ukaji3/fluentout-go/pkg/fluentout/models"

// Reference is the reference catalog loaded from a store.
// The first record of a name wins.
type Reference struct {
	records []models.Quantity
	index   map[string]int
}

// NewReference indexes reference records by name.
func NewReference(records []models.Quantity) *Reference {
	r := &Reference{index: make(map[string]int)}
	for _, q := range records {
		if _, dup := r.index[q.Name]; dup {
			continue
		}
		r.index[q.Name] = len(r.records)
		r.records = append(r.records, q)
	}
	return r
}

// Lookup returns the reference record of a quantity name.
func (r *Reference) Lookup(name string) (models.Quantity, bool) {
	if r == nil {
		return models.Quantity{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return models.Quantity{}, false
	}
	return r.records[i], true
}

// Len returns the number of distinct reference records.
func (r *Reference) Len() int {
	if r == nil {
		return 0
	}
	return len(r.records)
}
