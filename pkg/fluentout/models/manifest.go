package models

import "time"

// Manifest summarizes one run: what was read, how it was interpreted and
// what was written.
type Manifest struct {
	// RunID identifies the run.
	RunID string `json:"run_id"`
	// CreatedAt is the time the manifest was built.
	CreatedAt time.Time `json:"created_at"`
	// Datasets lists the parsed reports.
	Datasets []DatasetSummary `json:"datasets"`
	// Skipped lists report paths that yielded no dataset.
	Skipped []string `json:"skipped,omitempty"`
	// Quantities is the frozen catalog.
	Quantities []Quantity `json:"quantities"`
	// Series lists the derived series without samples.
	Series []SeriesSummary `json:"series"`
	// Plots lists the built plot specs without samples.
	Plots []PlotSpec `json:"plots,omitempty"`
	// Artifacts lists every file written during the run.
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// DatasetSummary describes a parsed report.
type DatasetSummary struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

// Summarize returns the summary of d.
func (d Dataset) Summarize() DatasetSummary {
	return DatasetSummary{Name: d.Name, Path: d.Path, Columns: d.Columns, Rows: len(d.Rows)}
}

// SeriesSummary describes a derived series.
type SeriesSummary struct {
	Label   string `json:"label"`
	Dataset string `json:"dataset"`
	X       string `json:"x"`
	Y       string `json:"y"`
	Samples int    `json:"samples"`
	// XRange and YRange are the sample ranges; zero when there are no samples.
	XRange Bounds `json:"x_range"`
	YRange Bounds `json:"y_range"`
}

// Artifact is a file written by a run.
type Artifact struct {
	// Kind is "text", "workbook", "plot" or "reference".
	Kind string `json:"kind"`
	Path string `json:"path"`
}
