// Package series derives, groups and measures x/y series.
package series

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/catalog"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
)

// SampleError reports a data token that cannot be read as a number.
type SampleError struct {
	Dataset  string
	Quantity string
	Row      int // 1-based data row
	Token    string
	Err      error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("dataset %q, quantity %q, row %d: invalid sample %q: %v", e.Dataset, e.Quantity, e.Row, e.Token, e.Err)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}

// ErrMissingSample indicates a data row shorter than the header.
var ErrMissingSample = errors.New("row has fewer columns than the header")

// Derivation is the outcome of deriving series from datasets.
type Derivation struct {
	// Series holds all derived series in dataset order.
	Series []models.Series
	// Skipped names datasets without an xdata or ydata quantity.
	Skipped []string
}

// Derive builds, per dataset, one series for every pairing of an xdata
// quantity with a ydata quantity present in the dataset. Pairings follow
// catalog order, x-major.
func Derive(datasets []models.Dataset, snap *catalog.Snapshot) (Derivation, error) {
	var out Derivation
	xs := snap.OfKind(models.KindIndependent)
	ys := snap.OfKind(models.KindDependent)

	for _, ds := range datasets {
		dx := present(ds, xs)
		dy := present(ds, ys)
		if len(dx) == 0 || len(dy) == 0 {
			out.Skipped = append(out.Skipped, ds.Name)
			continue
		}

		single := len(dx) == 1 && len(dy) == 1
		n := 1
		for _, xq := range dx {
			xv, err := Column(ds, xq)
			if err != nil {
				return out, err
			}
			for _, yq := range dy {
				yv, err := Column(ds, yq)
				if err != nil {
					return out, err
				}

				label := ds.Name
				if !single {
					label = fmt.Sprintf("%s-%d", ds.Name, n)
				}
				out.Series = append(out.Series, models.Series{
					Label:   label,
					Dataset: ds.Name,
					X:       xq,
					Y:       yq,
					XValues: append([]float64(nil), xv...),
					YValues: append([]float64(nil), yv...),
				})
				n++
			}
		}
	}
	return out, nil
}

func present(ds models.Dataset, qs []models.Quantity) []models.Quantity {
	var out []models.Quantity
	for _, q := range qs {
		if ds.HasColumn(q.Name) {
			out = append(out, q)
		}
	}
	return out
}

// Column reads and transforms the samples of one quantity of a dataset.
func Column(ds models.Dataset, q models.Quantity) ([]float64, error) {
	idx := ds.ColumnIndex(q.Name)
	if idx < 0 {
		return nil, fmt.Errorf("dataset %q has no column %q", ds.Name, q.Name)
	}

	values := make([]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		if idx >= len(row) {
			return nil, &SampleError{Dataset: ds.Name, Quantity: q.Name, Row: i + 1, Err: ErrMissingSample}
		}
		raw, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, &SampleError{Dataset: ds.Name, Quantity: q.Name, Row: i + 1, Token: row[idx], Err: err}
		}
		values[i] = q.Transform(raw)
	}
	return values, nil
}
