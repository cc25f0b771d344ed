// Package catalog merges quantities discovered in report files with the
// persisted reference catalog.
package catalog

import (
	"errors"
	"fmt"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
)

var (
	// ErrNoQuantities indicates that no report file contributed a quantity.
	ErrNoQuantities = errors.New("no quantities were found in the provided report files")
	// ErrMissingPairing indicates the catalog lacks an xdata or a ydata quantity.
	ErrMissingPairing = errors.New("at least one xdata quantity and one ydata quantity have to be defined")
	// ErrFrozen indicates a write to a catalog after Freeze.
	ErrFrozen = errors.New("catalog is frozen")
	// ErrUnknownQuantity indicates a name that is not in the catalog.
	ErrUnknownQuantity = errors.New("unknown quantity")
	// ErrKindTransition indicates an attempt to reclassify a quantity.
	ErrKindTransition = errors.New("quantity is already classified")
)

// Catalog is the working registry of quantities seen in this run.
// Quantities keep first-seen order.
type Catalog struct {
	quantities []models.Quantity
	index      map[string]int
	frozen     bool
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Observe records one appearance of a quantity name in a parsed file.
func (c *Catalog) Observe(name string) {
	if i, ok := c.index[name]; ok {
		c.quantities[i].Occurrences++
		return
	}
	c.index[name] = len(c.quantities)
	c.quantities = append(c.quantities, models.NewQuantity(name))
}

// Discover observes every column of every dataset.
func (c *Catalog) Discover(datasets ...models.Dataset) {
	for _, ds := range datasets {
		for _, name := range ds.Columns {
			c.Observe(name)
		}
	}
}

// Len returns the number of quantities.
func (c *Catalog) Len() int {
	return len(c.quantities)
}

// Quantities returns a copy of all quantities in catalog order.
func (c *Catalog) Quantities() []models.Quantity {
	out := make([]models.Quantity, len(c.quantities))
	copy(out, c.quantities)
	return out
}

// Get returns the named quantity.
func (c *Catalog) Get(name string) (models.Quantity, bool) {
	i, ok := c.index[name]
	if !ok {
		return models.Quantity{}, false
	}
	return c.quantities[i], true
}

// Unclassified returns the names still waiting for a decision.
func (c *Catalog) Unclassified() []string {
	var names []string
	for _, q := range c.quantities {
		if !q.Kind.Classified() {
			names = append(names, q.Name)
		}
	}
	return names
}

// Classify stores the settings of q for the quantity of the same name.
// A classified quantity only accepts the kind it already has.
func (c *Catalog) Classify(q models.Quantity) error {
	if c.frozen {
		return ErrFrozen
	}
	i, ok := c.index[q.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuantity, q.Name)
	}
	if !q.Kind.Classified() {
		return fmt.Errorf("quantity %q: kind must be one of none/xdata/ydata", q.Name)
	}
	cur := &c.quantities[i]
	if cur.Kind.Classified() && cur.Kind != q.Kind {
		return fmt.Errorf("%w: %q is %s", ErrKindTransition, q.Name, cur.Kind)
	}

	cur.Kind = q.Kind
	if q.Kind == models.KindExcluded {
		cur.Description = "none"
		cur.Offset = 0
		cur.Scale = 0
		return nil
	}
	cur.Description = q.Description
	cur.Offset = q.Offset
	cur.Scale = q.Scale
	return nil
}

// Accept copies kind, description, offset and scale of a reference record
// onto the quantity of the same name.
func (c *Catalog) Accept(ref models.Quantity) error {
	if c.frozen {
		return ErrFrozen
	}
	i, ok := c.index[ref.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuantity, ref.Name)
	}
	cur := &c.quantities[i]
	if cur.Kind.Classified() && cur.Kind != ref.Kind {
		return fmt.Errorf("%w: %q is %s", ErrKindTransition, ref.Name, cur.Kind)
	}
	cur.Kind = ref.Kind
	cur.Description = ref.Description
	cur.Offset = ref.Offset
	cur.Scale = ref.Scale
	return nil
}

// Validate checks the preconditions of series derivation.
func (c *Catalog) Validate() error {
	if len(c.quantities) == 0 {
		return ErrNoQuantities
	}
	var hasX, hasY bool
	for _, q := range c.quantities {
		switch q.Kind {
		case models.KindIndependent:
			hasX = true
		case models.KindDependent:
			hasY = true
		}
	}
	if !hasX || !hasY {
		return ErrMissingPairing
	}
	return nil
}

// Freeze validates the catalog and returns its immutable snapshot.
// The catalog rejects further changes once frozen.
func (c *Catalog) Freeze() (*Snapshot, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.frozen = true
	return newSnapshot(c.quantities), nil
}

// Snapshot is the read-only view of a classified catalog.
type Snapshot struct {
	quantities []models.Quantity
	index      map[string]int
}

func newSnapshot(quantities []models.Quantity) *Snapshot {
	s := &Snapshot{
		quantities: make([]models.Quantity, len(quantities)),
		index:      make(map[string]int, len(quantities)),
	}
	copy(s.quantities, quantities)
	for i, q := range s.quantities {
		s.index[q.Name] = i
	}
	return s
}

// Quantities returns a copy of all quantities in catalog order.
func (s *Snapshot) Quantities() []models.Quantity {
	out := make([]models.Quantity, len(s.quantities))
	copy(out, s.quantities)
	return out
}

// Lookup returns the named quantity.
func (s *Snapshot) Lookup(name string) (models.Quantity, bool) {
	i, ok := s.index[name]
	if !ok {
		return models.Quantity{}, false
	}
	return s.quantities[i], true
}

// OfKind returns the quantities of one kind in catalog order.
func (s *Snapshot) OfKind(kind models.Kind) []models.Quantity {
	var out []models.Quantity
	for _, q := range s.quantities {
		if q.Kind == kind {
			out = append(out, q)
		}
	}
	return out
}
