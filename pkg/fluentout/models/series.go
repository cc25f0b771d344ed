package models

// Axis selects the x or y values of a series.
type Axis int

const (
	// AxisX selects independent values.
	AxisX Axis = iota
	// AxisY selects dependent values.
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Series is one derived (x, y) pairing from one dataset.
type Series struct {
	// Label is the dataset name, or "dataset-N" when the dataset yields
	// more than one pairing.
	Label string `json:"label"`
	// Dataset is the name of the source dataset.
	Dataset string `json:"dataset"`
	// X is the independent quantity as frozen at derivation time.
	X Quantity `json:"x"`
	// Y is the dependent quantity as frozen at derivation time.
	Y Quantity `json:"y"`
	// XValues are the transformed x samples in row order.
	XValues []float64 `json:"-"`
	// YValues are the transformed y samples in row order.
	YValues []float64 `json:"-"`
}

// Values returns the samples of the selected axis.
func (s Series) Values(a Axis) []float64 {
	if a == AxisX {
		return s.XValues
	}
	return s.YValues
}

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s.XValues)
}

// Quantities returns the pairing key shared by series of one group.
func (s Series) Quantities() (x, y string) {
	return s.X.Name, s.Y.Name
}
