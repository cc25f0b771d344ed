package output

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
)

// WorkbookExt is the extension of the spreadsheet export.
const WorkbookExt = ".xlsx"

const maxSheetName = 31

var sheetUnsafe = strings.NewReplacer("[", "(", "]", ")", ":", "-", "*", "-", "?", "-", "/", "-", `\`, "-", "'", "")

// SheetName returns a valid, unique sheet name for label. used holds the
// names already taken and is updated.
func SheetName(label string, used map[string]bool) string {
	base := strings.TrimSpace(sheetUnsafe.Replace(label))
	if base == "" {
		base = "series"
	}
	name := truncate(base, maxSheetName)
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// WriteWorkbook writes every series into its own sheet of one workbook: the
// name row, the description row, then one row per sample, with a scatter
// chart of the samples next to the data.
func WriteWorkbook(path string, list []models.Series) (err error) {
	if len(list) == 0 {
		return fmt.Errorf("no series to write")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	used := make(map[string]bool)
	for i, s := range list {
		sheet := SheetName(s.Label, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, s); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, s models.Series) error {
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{s.X.Name, s.Y.Name}); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A2", &[]interface{}{s.X.Description, s.Y.Description}); err != nil {
		return err
	}
	for i := range s.XValues {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{s.XValues[i], s.YValues[i]}); err != nil {
			return err
		}
	}
	if s.Len() == 0 {
		return nil
	}

	last := s.Len() + 2
	ref := "'" + sheet + "'!"
	return f.AddChart(sheet, "D2", &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{{
			Name:       ref + "$B$1",
			Categories: fmt.Sprintf("%s$A$3:$A$%d", ref, last),
			Values:     fmt.Sprintf("%s$B$3:$B$%d", ref, last),
		}},
		Title: []excelize.RichTextRun{{Text: s.Label}},
		XAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: s.X.Description}}},
		YAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: s.Y.Description}}},
	})
}

// ReadWorkbook reads series back from a workbook written by WriteWorkbook.
// Empty sheets are skipped; blank names or descriptions read as empty
// strings and sample cells that are not numbers are errors.
func ReadWorkbook(path string) ([]models.Series, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var list []models.Series
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		// excelize trims trailing empty cells and rows
		names, descs := pad(rows, 0), pad(rows, 1)

		s := models.Series{Label: sheet, Dataset: sheet}
		s.X, s.Y = models.NewQuantity(names[0]), models.NewQuantity(names[1])
		s.X.Kind, s.Y.Kind = models.KindIndependent, models.KindDependent
		s.X.Description, s.Y.Description = descs[0], descs[1]

		var data [][]string
		if len(rows) > 2 {
			data = rows[2:]
		}
		for i, row := range data {
			if len(row) < 2 {
				return nil, fmt.Errorf("sheet %s row %d: expected 2 cells, got %d", sheet, i+3, len(row))
			}
			x, err := parseSample(row[0])
			if err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", sheet, i+3, err)
			}
			y, err := parseSample(row[1])
			if err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", sheet, i+3, err)
			}
			s.XValues = append(s.XValues, x)
			s.YValues = append(s.YValues, y)
		}
		list = append(list, s)
	}
	return list, nil
}

// pad returns row i of rows with at least two cells.
func pad(rows [][]string, i int) []string {
	out := make([]string, 2)
	if i < len(rows) {
		copy(out, rows[i])
	}
	return out
}
