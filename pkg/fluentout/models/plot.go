package models

// Bounds is a closed numeric axis range.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Valid reports whether Min is strictly below Max.
func (b Bounds) Valid() bool {
	return b.Min < b.Max
}

// PlotSeries is one line or point cloud of a plot.
type PlotSeries struct {
	// Legend is the legend entry of the series.
	Legend string `json:"legend"`
	// XValues are the x samples.
	XValues []float64 `json:"-"`
	// YValues are the y samples.
	YValues []float64 `json:"-"`
}

// PlotSpec is a fully resolved chart description.
type PlotSpec struct {
	// Name is the output file stem.
	Name string `json:"name"`
	// Title is the chart title, empty for none.
	Title string `json:"title,omitempty"`
	// XLabel is the x axis label.
	XLabel string `json:"x_label"`
	// YLabel is the y axis label.
	YLabel string `json:"y_label"`
	// Series holds the plotted data in drawing order.
	Series []PlotSeries `json:"series"`
	// XRange is the x axis range.
	XRange Bounds `json:"x_range"`
	// YRange is the y axis range.
	YRange Bounds `json:"y_range"`
}

// Combined reports whether the plot draws more than one series.
func (p PlotSpec) Combined() bool {
	return len(p.Series) > 1
}
