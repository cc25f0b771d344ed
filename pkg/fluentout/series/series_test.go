package series

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/catalog"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
)

func freeze(t *testing.T, datasets []models.Dataset, settings ...models.Quantity) *catalog.Snapshot {
	t.Helper()
	c := catalog.New()
	c.Discover(datasets...)
	for _, q := range settings {
		require.NoError(t, c.Classify(q))
	}
	snap, err := c.Freeze()
	require.NoError(t, err)
	return snap
}

func TestDeriveSingleSet(t *testing.T) {
	ds := models.Dataset{
		Name:    "drag",
		Columns: []string{"time", "force"},
		Rows:    [][]string{{"0", "1.0"}, {"1", "2.0"}, {"2", "1.5"}},
	}
	snap := freeze(t, []models.Dataset{ds},
		models.Quantity{Name: "time", Kind: models.KindIndependent, Offset: 0, Scale: 1},
		models.Quantity{Name: "force", Kind: models.KindDependent, Offset: -1, Scale: 2},
	)

	d, err := Derive([]models.Dataset{ds}, snap)
	require.NoError(t, err)
	require.Len(t, d.Series, 1)

	s := d.Series[0]
	assert.Equal(t, "drag", s.Label)
	assert.Equal(t, []float64{0, 1, 2}, s.XValues)
	assert.Equal(t, []float64{0, 2, 1}, s.YValues)
	assert.Equal(t, "force", s.Y.Name)
}

func TestDeriveCrossProduct(t *testing.T) {
	ds := models.Dataset{
		Name:    "case",
		Columns: []string{"y1", "x1", "y2", "x2", "y3"},
		Rows:    [][]string{{"1", "2", "3", "4", "5"}},
	}
	snap := freeze(t, []models.Dataset{ds},
		models.Quantity{Name: "y1", Kind: models.KindDependent, Scale: 1},
		models.Quantity{Name: "x1", Kind: models.KindIndependent, Scale: 1},
		models.Quantity{Name: "y2", Kind: models.KindDependent, Scale: 1},
		models.Quantity{Name: "x2", Kind: models.KindIndependent, Scale: 1},
		models.Quantity{Name: "y3", Kind: models.KindDependent, Scale: 1},
	)

	d, err := Derive([]models.Dataset{ds}, snap)
	require.NoError(t, err)
	require.Len(t, d.Series, 6)

	want := [][3]string{
		{"case-1", "x1", "y1"},
		{"case-2", "x1", "y2"},
		{"case-3", "x1", "y3"},
		{"case-4", "x2", "y1"},
		{"case-5", "x2", "y2"},
		{"case-6", "x2", "y3"},
	}
	for i, s := range d.Series {
		assert.Equal(t, want[i][0], s.Label)
		assert.Equal(t, want[i][1], s.X.Name)
		assert.Equal(t, want[i][2], s.Y.Name)
	}
}

func TestDeriveSkipsDatasetsWithoutPairing(t *testing.T) {
	a := models.Dataset{Name: "a", Columns: []string{"time", "force"}, Rows: [][]string{{"0", "1"}}}
	b := models.Dataset{Name: "b", Columns: []string{"time", "iter"}, Rows: [][]string{{"0", "1"}}}
	snap := freeze(t, []models.Dataset{a, b},
		models.Quantity{Name: "time", Kind: models.KindIndependent, Scale: 1},
		models.Quantity{Name: "force", Kind: models.KindDependent, Scale: 1},
		models.Quantity{Name: "iter", Kind: models.KindExcluded},
	)

	d, err := Derive([]models.Dataset{a, b}, snap)
	require.NoError(t, err)
	assert.Len(t, d.Series, 1)
	assert.Equal(t, []string{"b"}, d.Skipped)
}

func TestDeriveSampleErrors(t *testing.T) {
	settings := []models.Quantity{
		{Name: "time", Kind: models.KindIndependent, Scale: 1},
		{Name: "force", Kind: models.KindDependent, Scale: 1},
	}

	t.Run("bad token", func(t *testing.T) {
		ds := models.Dataset{Name: "bad", Columns: []string{"time", "force"}, Rows: [][]string{{"0", "1"}, {"1", "n/a"}}}
		_, err := Derive([]models.Dataset{ds}, freeze(t, []models.Dataset{ds}, settings...))

		var se *SampleError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "force", se.Quantity)
		assert.Equal(t, 2, se.Row)
		assert.Equal(t, "n/a", se.Token)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("short row", func(t *testing.T) {
		ds := models.Dataset{Name: "short", Columns: []string{"time", "force"}, Rows: [][]string{{"0"}}}
		_, err := Derive([]models.Dataset{ds}, freeze(t, []models.Dataset{ds}, settings...))
		assert.ErrorIs(t, err, ErrMissingSample)
	})
}

func TestTransformExact(t *testing.T) {
	for _, tc := range []struct{ raw, offset, scale float64 }{
		{1.5, 0.5, 4},
		{-2, 2, 1000},
		{0.25, -0.125, 8},
	} {
		q := models.Quantity{Name: "q", Kind: models.KindDependent, Offset: tc.offset, Scale: tc.scale}
		ds := models.Dataset{Name: "d", Columns: []string{"q"}, Rows: [][]string{{strconv.FormatFloat(tc.raw, 'g', -1, 64)}}}

		values, err := Column(ds, q)
		require.NoError(t, err)
		assert.Equal(t, tc.scale*(tc.raw+tc.offset), values[0], fmt.Sprintf("%+v", tc))
	}
}

func mkSeries(label, x, y string, xs, ys []float64) models.Series {
	return models.Series{
		Label:   label,
		X:       models.Quantity{Name: x, Kind: models.KindIndependent},
		Y:       models.Quantity{Name: y, Kind: models.KindDependent},
		XValues: xs,
		YValues: ys,
	}
}

func TestGroupByQuantities(t *testing.T) {
	list := []models.Series{
		mkSeries("a", "time", "cl", nil, nil),
		mkSeries("b", "time", "cd", nil, nil),
		mkSeries("c", "time", "cl", nil, nil),
		mkSeries("d", "iter", "cl", nil, nil),
		mkSeries("e", "time", "cd", nil, nil),
	}

	groups := GroupByQuantities(list)
	require.Len(t, groups, 3)

	labels := func(g Group) []string {
		var out []string
		for _, s := range g.Members {
			out = append(out, s.Label)
		}
		return out
	}
	assert.Equal(t, []string{"a", "c"}, labels(groups[0]))
	assert.Equal(t, []string{"b", "e"}, labels(groups[1]))
	assert.Equal(t, []string{"d"}, labels(groups[2]))

	total := 0
	for _, g := range groups {
		total += len(g.Members)
		for _, s := range g.Members {
			assert.Equal(t, g.X.Name, s.X.Name)
			assert.Equal(t, g.Y.Name, s.Y.Name)
		}
	}
	assert.Equal(t, len(list), total)
	assert.True(t, HasMultiGroup(groups))
	assert.False(t, HasMultiGroup(groups[2:]))
	assert.Empty(t, GroupByQuantities(nil))
}

func TestRange(t *testing.T) {
	list := []models.Series{
		mkSeries("a", "x", "y", []float64{1, 5, 3}, []float64{-1, 0, 1}),
		mkSeries("b", "x", "y", []float64{0, 2}, []float64{7, 8}),
	}

	b, err := Range(list, models.AxisX)
	require.NoError(t, err)
	assert.Equal(t, models.Bounds{Min: 0, Max: 5}, b)

	x, y, err := Ranges(list)
	require.NoError(t, err)
	assert.Equal(t, b, x)
	assert.Equal(t, models.Bounds{Min: -1, Max: 8}, y)

	_, err = Range(nil, models.AxisY)
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = Range([]models.Series{mkSeries("e", "x", "y", nil, nil)}, models.AxisX)
	assert.ErrorIs(t, err, ErrNoSamples)
}
