package fluentout

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/catalog"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/output"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/parser"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/plot"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/prompt"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/series"
)

// WorkbookName is the file stem of the workbook export.
const WorkbookName = "xy-datasets"

// Session runs the interactive pipeline: file selection, extraction,
// quantity classification, derivation, exports and plots.
type Session struct {
	Options  Options
	Decider  prompt.Decider
	Reporter prompt.Reporter
	Store    catalog.Store
	Renderer plot.Renderer
	Logger   *slog.Logger
}

// Result is what a completed session produced.
type Result struct {
	Datasets []models.Dataset
	Snapshot *catalog.Snapshot
	Series   []models.Series
	Plots    []models.PlotSpec
	Manifest *models.Manifest
}

// NewSession wires a session from options. The reference store is a file
// store unless no reference file is configured, and plots go to OutputDir.
func NewSession(opts Options, d prompt.Decider, r prompt.Reporter, logger *slog.Logger) *Session {
	if r == nil {
		r = prompt.Silent
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var store catalog.Store
	if opts.ReferenceFile == "" {
		store = catalog.NewMemStore()
	} else {
		store = catalog.NewFileStore(opts.ReferenceFile, opts.Delimiter())
	}

	return &Session{
		Options:  opts,
		Decider:  d,
		Reporter: r,
		Store:    store,
		Renderer: plot.NewChartRenderer(opts.OutputDir, opts.Plot, logger),
		Logger:   logger,
	}
}

// Run processes the given report files, or the files found in the data
// directory (then the working directory) when none are given.
func (s *Session) Run(files []string) (*Result, error) {
	res := &Result{Manifest: output.NewManifest()}
	s.Logger.Info("session started", "run_id", res.Manifest.RunID)

	s.Reporter.Section("Collect files")
	if len(files) == 0 {
		var err error
		if files, err = s.selectFiles(); err != nil {
			return res, err
		}
	}

	s.Reporter.Section("File processing")
	s.Reporter.Printf("Processing %d datafile(s):\n", len(files))
	ex, err := Extract(files, s.Logger)
	if err != nil {
		return res, err
	}
	for _, path := range ex.Skipped {
		s.Reporter.Warnf("File %s is not in the correct format or could not be opened.\n", path)
	}
	for _, ds := range ex.Datasets {
		s.Reporter.Printf("Extracted data from file %s\n", ds.Path)
		res.Manifest.Datasets = append(res.Manifest.Datasets, ds.Summarize())
	}
	res.Datasets = ex.Datasets
	res.Manifest.Skipped = ex.Skipped

	s.Reporter.Section("Quantity processing")
	if res.Snapshot, err = s.classify(ex.Datasets); err != nil {
		return res, err
	}
	res.Manifest.Quantities = res.Snapshot.Quantities()

	s.Reporter.Section("Data processing")
	if res.Series, err = s.derive(ex.Datasets, res.Snapshot, len(files)); err != nil {
		return res, err
	}
	res.Manifest.Series = output.SummarizeSeries(res.Series)

	if len(res.Series) > 0 {
		s.Reporter.Section("File output")
		if err := s.export(res); err != nil {
			return res, err
		}

		s.Reporter.Section("Plotting")
		if err := s.plot(res); err != nil {
			return res, err
		}
	}

	if s.Options.Manifest != "" {
		if err := output.WriteManifest(s.Options.Manifest, res.Manifest); err != nil {
			return res, NewStageError("manifest", err)
		}
		s.Logger.Info("manifest written", "path", s.Options.Manifest)
	}

	s.Reporter.Section("Done")
	return res, nil
}

func (s *Session) selectFiles() ([]string, error) {
	files, dir, err := parser.FindReports(s.Options.DataDir, ".")
	if err != nil {
		return nil, NewStageError("discover", err)
	}
	if len(files) == 0 {
		s.Reporter.Warnf("No .out files found in the current directory or in %s.\n", s.Options.DataDir)
		return nil, NewStageError("discover", ErrNoReportFiles)
	}

	s.Reporter.Printf("Found %d .out file(s) in %s:\n", len(files), dir)
	for i, f := range files {
		s.Reporter.Printf("%d: %s\n", i+1, filepath.Base(f))
	}

	all, err := s.Decider.Confirm("Automatically process all data files at once?")
	if err != nil || all {
		return files, err
	}
	for {
		picked, err := s.Decider.AskSelection("Enter the numbers of datafiles to be processed", len(files))
		if err != nil {
			return nil, err
		}
		if len(picked) == 0 {
			s.Reporter.Warnf("%v.\n", ErrNothingSelected)
			continue
		}
		selected := make([]string, 0, len(picked))
		for _, i := range picked {
			selected = append(selected, files[i])
		}
		return selected, nil
	}
}

func (s *Session) classify(datasets []models.Dataset) (*catalog.Snapshot, error) {
	c := catalog.New()
	c.Discover(datasets...)
	if c.Len() == 0 {
		s.Reporter.Warnf("No quantities were found in the provided datafiles.\n")
		return nil, NewStageError("classify", catalog.ErrNoQuantities)
	}

	s.Reporter.Printf("Found %d quantities in the datafiles:\n", c.Len())
	for _, q := range c.Quantities() {
		s.Reporter.Printf("- '%s' included in %d datafiles.\n", q.Name, q.Occurrences)
	}

	cl := catalog.NewClassifier(c, s.Store, s.Decider, s.Reporter, s.Logger)
	if err := cl.Run(); err != nil {
		return nil, NewStageError("classify", err)
	}

	snap, err := c.Freeze()
	if err != nil {
		if errors.Is(err, catalog.ErrMissingPairing) {
			s.Reporter.Warnf("At least one xdata quantity and one ydata quantity have to be defined for data evaluation.\n")
		}
		return nil, NewStageError("classify", err)
	}

	s.Reporter.Printf("\nOverview over all %d current quantities:\n", len(snap.Quantities()))
	for _, q := range snap.Quantities() {
		s.Reporter.Printf("- Settings for quantity '%s':\n%s\n", q.Name, catalog.Describe(q, "    - "))
	}
	return snap, nil
}

func (s *Session) derive(datasets []models.Dataset, snap *catalog.Snapshot, files int) ([]models.Series, error) {
	d, err := series.Derive(datasets, snap)
	if err != nil {
		return nil, NewStageError("derive", err)
	}

	s.Reporter.Printf("Available xy datasets:\n")
	for _, item := range d.Series {
		s.Reporter.Printf("- %s:\n    - x: %s\n    - y: %s\n", item.Label, item.X.Name, item.Y.Name)
	}
	for _, name := range d.Skipped {
		s.Reporter.Warnf("Skipping dataset '%s'. No valid xy data has been found.\n", name)
	}
	s.Reporter.Successf("\nCreated %d xy dataset(s) from %d dataset(s) found in %d file(s).\n", len(d.Series), len(datasets), files)
	s.Logger.Info("series derived", "series", len(d.Series), "skipped", len(d.Skipped))
	return d.Series, nil
}

func (s *Session) export(res *Result) error {
	write, err := s.Decider.Confirm("Write xy datasets to files?\nExisting files of these datasets will be overwritten.")
	if err != nil || !write {
		return err
	}

	options := make([]string, len(output.Formats))
	for i, f := range output.Formats {
		options[i] = string(f)
	}
	i, err := s.Decider.AskChoice("\nSpecify format of data to be written", options)
	if err != nil {
		return err
	}
	format := output.Formats[i]

	if format == output.FormatWorkbook {
		path := filepath.Join(s.Options.OutputDir, WorkbookName+output.WorkbookExt)
		if err := output.WriteWorkbook(path, res.Series); err != nil {
			return NewStageError("export", err)
		}
		s.Reporter.Printf("Created file '%s'\n", path)
		res.Manifest.Artifacts = append(res.Manifest.Artifacts, models.Artifact{Kind: "workbook", Path: path})
		return nil
	}

	var delim rune
	if format == output.FormatDelimited {
		if delim, err = s.askDelimiter(res.Series); err != nil {
			return err
		}
	}
	paths, err := output.WriteFiles(s.Options.OutputDir, res.Series, format, delim)
	for _, p := range paths {
		s.Reporter.Printf("Created file '%s'\n", p)
		res.Manifest.Artifacts = append(res.Manifest.Artifacts, models.Artifact{Kind: "text", Path: p})
	}
	if err != nil {
		return NewStageError("export", err)
	}
	return nil
}

func (s *Session) askDelimiter(list []models.Series) (rune, error) {
	for {
		answer, err := s.Decider.AskText("\nSpecify delimiter between x and y data:\nGood options are a space, a comma or any common delimiter. Can only be a single character. Leave blank for a space.")
		if err != nil {
			return 0, err
		}
		d := ' '
		if answer != "" {
			if d, err = output.ParseDelimiter(answer); err != nil {
				s.Reporter.Warnf("Invalid delimiter.\n")
				continue
			}
		}
		if output.CheckDelimiter(list, d) != nil {
			s.Reporter.Warnf("Invalid delimiter. It occurs in a quantity name or description.\n")
			continue
		}
		return d, nil
	}
}

func (s *Session) plot(res *Result) error {
	create, err := s.Decider.Confirm("Create plots for xy datasets?\nExisting plots of these datasets will be overwritten.")
	if err != nil || !create {
		return err
	}

	groups := series.GroupByQuantities(res.Series)
	s.Reporter.Printf("\nSorted xy datasets by matching quantities:\n")
	for _, g := range groups {
		s.Reporter.Printf("- %d set(s) with x quantity '%s' and y quantity '%s':\n", len(g.Members), g.X.Name, g.Y.Name)
		for _, m := range g.Members {
			s.Reporter.Printf("    - %s\n", m.Label)
		}
	}

	planner := plot.NewPlanner(s.Decider, s.Reporter, s.Options.Precision)
	individual, err := planner.Individual(groups)
	if err != nil {
		return NewStageError("plot", err)
	}
	if len(individual) > 0 {
		s.Reporter.Printf("Creating individual plots:\n")
		if err := s.render(res, individual); err != nil {
			return err
		}
	}

	combined, err := planner.Combined(groups, res.Series)
	if err != nil {
		return NewStageError("plot", err)
	}
	if len(combined) > 0 {
		s.Reporter.Printf("\nCreating combined plots:\n")
		if err := s.render(res, combined); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) render(res *Result, specs []models.PlotSpec) error {
	for _, spec := range specs {
		path, err := s.Renderer.Render(spec, s.Options.Plot.Mode)
		if err != nil {
			return NewStageError("plot", fmt.Errorf("%s: %w", spec.Name, err))
		}
		s.Reporter.Printf("Created plot '%s'\n", path)
		res.Plots = append(res.Plots, spec)
		res.Manifest.Plots = append(res.Manifest.Plots, spec)
		res.Manifest.Artifacts = append(res.Manifest.Artifacts, models.Artifact{Kind: "plot", Path: path})
	}
	return nil
}
