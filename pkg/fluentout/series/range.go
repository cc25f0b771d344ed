package series

import (
	"errors"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
)

// ErrNoSamples indicates a range request without samples.
var ErrNoSamples = errors.New("range needs at least one series with samples")

// Range returns the smallest and largest value on one axis across all series.
func Range(list []models.Series, axis models.Axis) (models.Bounds, error) {
	if len(list) == 0 {
		return models.Bounds{}, ErrNoSamples
	}

	var b models.Bounds
	first := true
	for _, s := range list {
		values := s.Values(axis)
		if len(values) == 0 {
			return models.Bounds{}, ErrNoSamples
		}
		for _, v := range values {
			if first {
				b.Min, b.Max = v, v
				first = false
				continue
			}
			if v < b.Min {
				b.Min = v
			}
			if v > b.Max {
				b.Max = v
			}
		}
	}
	return b, nil
}

// Ranges returns the x and y ranges of the series.
func Ranges(list []models.Series) (x, y models.Bounds, err error) {
	if x, err = Range(list, models.AxisX); err != nil {
		return
	}
	y, err = Range(list, models.AxisY)
	return
}
