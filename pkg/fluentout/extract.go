package fluentout

import (
	"log/slog"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/parser"
)

// Extraction is the result of reading a batch of report files.
type Extraction struct {
	// Datasets holds the usable datasets in file order.
	Datasets []models.Dataset
	// Skipped lists the files that were missing or had no header or rows.
	Skipped []string
}

// Extract reads every report file. Missing and unparseable files are
// skipped; only read failures of existing files are errors.
func Extract(paths []string, logger *slog.Logger) (Extraction, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var ex Extraction
	for _, path := range paths {
		ds, err := parser.ReadReport(path)
		if err != nil {
			return ex, NewStageError("extract", err)
		}
		if ds.Empty() {
			logger.Info("skipping report without data", "path", path)
			ex.Skipped = append(ex.Skipped, path)
			continue
		}
		logger.Debug("report parsed", "path", path, "columns", len(ds.Columns), "rows", len(ds.Rows))
		ex.Datasets = append(ex.Datasets, ds)
	}
	return ex, nil
}
