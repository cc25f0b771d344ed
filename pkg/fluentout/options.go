// Package fluentout turns Fluent report files into scaled x/y series,
// plots and exports, reconciling quantity settings with a reference file.
package fluentout

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/parser"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/plot"
)

// DefaultConfigFile is the options file looked up in the working directory.
const DefaultConfigFile = "fluentout.yaml"

// Options configures a session.
type Options struct {
	// DataDir is searched for report files before the working directory.
	DataDir string `yaml:"data_dir"`
	// ReferenceFile holds the persisted quantity settings. Empty keeps the
	// references in memory for the session only.
	ReferenceFile string `yaml:"reference_file"`
	// ReferenceDelimiter separates the fields of a reference record. Must be
	// a single character.
	ReferenceDelimiter string `yaml:"reference_delimiter"`
	// OutputDir receives exported text files, workbooks and plots.
	OutputDir string `yaml:"output_dir"`
	// Precision is the number of significant digits shown for ranges.
	Precision int `yaml:"precision"`
	// Plot holds the image settings.
	Plot plot.Style `yaml:"plot"`
	// Manifest is the path of the JSON run summary. Empty disables it.
	Manifest string `yaml:"manifest"`
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		DataDir:            "Data",
		ReferenceFile:      "reference_quantities.dat",
		ReferenceDelimiter: string(parser.DefaultDelimiter),
		OutputDir:          ".",
		Precision:          6,
		Plot:               plot.DefaultStyle(),
	}
}

// LoadOptions reads options from a yaml file. Fields missing from the file
// keep their defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse options: %w", err)
	}
	return opts, opts.Validate()
}

// LoadOptionsOrDefault loads options from path, or returns the defaults if
// path is empty or does not exist.
func LoadOptionsOrDefault(path string) (Options, error) {
	if path == "" {
		return DefaultOptions(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultOptions(), nil
	}
	return LoadOptions(path)
}

// Save writes the options as yaml, creating parent directories.
func (o Options) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create options directory: %w", err)
		}
	}
	data, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write options file: %w", err)
	}
	return nil
}

// Validate checks the delimiter, the plot mode and the numeric settings.
func (o Options) Validate() error {
	if r := []rune(o.ReferenceDelimiter); len(r) != 1 {
		return fmt.Errorf("reference_delimiter must be a single character, got %q", o.ReferenceDelimiter)
	}
	if _, err := plot.ParseMode(string(o.Plot.Mode)); err != nil {
		return err
	}
	if o.Precision < 1 || o.Precision > 17 {
		return fmt.Errorf("precision must be between 1 and 17, got %d", o.Precision)
	}
	if o.Plot.Width <= 0 || o.Plot.Height <= 0 {
		return fmt.Errorf("plot size must be positive, got %dx%d", o.Plot.Width, o.Plot.Height)
	}
	return nil
}

// Delimiter returns the reference delimiter, or the default one when the
// field is not a single character.
func (o Options) Delimiter() rune {
	if r := []rune(o.ReferenceDelimiter); len(r) == 1 {
		return r[0]
	}
	return parser.DefaultDelimiter
}
