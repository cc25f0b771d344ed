// Package main provides the CLI entry point for fluentout-go.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ukaji3/fluentout-go/pkg/fluentout"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/output"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/parser"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/plot"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/prompt"
)

var (
	configPath string
	logLevel   string
	noColor    bool

	dataDir       string
	referenceFile string
	delimiter     string
	outputDir     string
	plotMode      string
	manifestPath  string

	inspectOutput string
	pretty        bool
	force         bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fluentout [report.out...]",
		Short: "Turn Fluent report files into x/y datasets and plots",
		Long: `fluentout-go reads Fluent .out report files, classifies their quantities
against a reference file and writes scaled x/y datasets and plots.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runSession,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", fluentout.DefaultConfigFile, "Options file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored console output")

	runCmd := &cobra.Command{
		Use:   "run [report.out...]",
		Short: "Run the interactive session (default command)",
		Args:  cobra.ArbitraryArgs,
		RunE:  runSession,
	}
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().StringVar(&dataDir, "data-dir", "", "Directory searched for .out files")
		c.Flags().StringVar(&referenceFile, "reference", "", "Reference quantities file")
		c.Flags().StringVar(&delimiter, "delimiter", "", "Reference file field delimiter")
		c.Flags().StringVar(&outputDir, "output-dir", "", "Directory for exported files and plots")
		c.Flags().StringVar(&plotMode, "plot-mode", "", "Plot mode: line or scatter")
		c.Flags().StringVar(&manifestPath, "manifest", "", "Write a JSON run manifest to this path")
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect file...",
		Short: "Describe report files or exported workbooks as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "Output file path (default: stdout)")
	inspectCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the options file",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default options file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(runCmd, inspectCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level: %s", logLevel)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if noColor {
		color.NoColor = true
	}
	return nil
}

// loadOptions reads the options file and applies the flags that were set.
func loadOptions(cmd *cobra.Command) (fluentout.Options, error) {
	opts, err := fluentout.LoadOptionsOrDefault(configPath)
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		opts.DataDir = dataDir
	}
	if flags.Changed("reference") {
		opts.ReferenceFile = referenceFile
	}
	if flags.Changed("delimiter") {
		opts.ReferenceDelimiter = delimiter
	}
	if flags.Changed("output-dir") {
		opts.OutputDir = outputDir
	}
	if flags.Changed("plot-mode") {
		m, err := plot.ParseMode(plotMode)
		if err != nil {
			return opts, err
		}
		opts.Plot.Mode = m
	}
	if flags.Changed("manifest") {
		opts.Manifest = manifestPath
	}
	return opts, opts.Validate()
}

func runSession(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	console, err := prompt.NewStdConsole()
	if err != nil {
		return fmt.Errorf("failed to open console: %w", err)
	}
	defer console.Close()

	session := fluentout.NewSession(opts, console, console, slog.Default())
	if _, err := session.Run(args); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			console.Warnf("\nExiting program.\n")
		}
		return err
	}
	return nil
}

// inspectResult is the JSON document printed by the inspect command.
type inspectResult struct {
	Datasets []models.DatasetSummary `json:"datasets,omitempty"`
	Series   []models.SeriesSummary  `json:"series,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	var result inspectResult
	for _, path := range args {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}

		// Workbooks written by the workbook export are read back as series.
		if strings.EqualFold(filepath.Ext(path), output.WorkbookExt) {
			list, err := output.ReadWorkbook(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			result.Series = append(result.Series, output.SummarizeSeries(list)...)
			continue
		}

		ds, err := parser.ReadReport(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		result.Datasets = append(result.Datasets, ds.Summarize())
	}

	jsonData, err := output.ToJSON(result, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if inspectOutput != "" {
		if err := os.WriteFile(inspectOutput, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := fluentout.DefaultConfigFile
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := fluentout.DefaultOptions().Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default options to %s\n", path)
	return nil
}
