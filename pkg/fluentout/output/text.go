// Package output writes derived series and run summaries to files.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
	"github.com/ukaji3/fluentout-go/pkg/fluentout/parser"
)

// Format names an export layout.
type Format string

const (
	// FormatPairedList writes "[[x1,y1],[x2,y2],...]" on one line after
	// two "name: description" lines.
	FormatPairedList Format = "paired-list"
	// FormatDelimited writes one "x{d}y" line per sample after a name row
	// and a description row.
	FormatDelimited Format = "delimited-pairs"
	// FormatWorkbook writes every series into one spreadsheet.
	FormatWorkbook Format = "workbook"
)

// Formats lists the export layouts in prompt order.
var Formats = []Format{FormatPairedList, FormatDelimited, FormatWorkbook}

// TextExt is the extension of per-series text files.
const TextExt = ".txt"

var (
	// ErrInvalidDelimiter indicates a delimiter that is not exactly one character.
	ErrInvalidDelimiter = errors.New("delimiter must be a single character")
	// ErrAmbiguousDelimiter indicates a delimiter that occurs in a quantity
	// name or description, so the header rows could not be split back.
	ErrAmbiguousDelimiter = errors.New("delimiter occurs in quantity names or descriptions")
)

// ParseFormat converts a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ParseDelimiter returns the only character of s.
func ParseDelimiter(s string) (rune, error) {
	r := []rune(s)
	if len(r) != 1 || r[0] == '\n' || r[0] == '\r' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, s)
	}
	return r[0], nil
}

// CheckDelimiter rejects a delimiter that occurs in the name or description
// of any quantity in list.
func CheckDelimiter(list []models.Series, delim rune) error {
	for _, s := range list {
		for _, text := range []string{s.X.Name, s.Y.Name, s.X.Description, s.Y.Description} {
			if strings.ContainsRune(text, delim) {
				return fmt.Errorf("%w: %q in %q", ErrAmbiguousDelimiter, delim, text)
			}
		}
	}
	return nil
}

// WritePairedList writes s in the paired-list layout.
func WritePairedList(w io.Writer, s models.Series) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s: %s\n", s.X.Name, s.X.Description)
	fmt.Fprintf(bw, "%s: %s\n", s.Y.Name, s.Y.Description)

	bw.WriteByte('[')
	for i := range s.XValues {
		if i > 0 {
			bw.WriteByte(',')
		}
		fmt.Fprintf(bw, "[%s,%s]", parser.FormatFloat(s.XValues[i]), parser.FormatFloat(s.YValues[i]))
	}
	bw.WriteString("]\n")
	return bw.Flush()
}

// WriteDelimited writes s in the delimited-pairs layout. See CheckDelimiter.
func WriteDelimited(w io.Writer, s models.Series, delim rune) error {
	d := string(delim)
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%s%s\n", s.X.Name, d, s.Y.Name)
	fmt.Fprintf(bw, "%s%s%s\n", s.X.Description, d, s.Y.Description)
	for i := range s.XValues {
		fmt.Fprintf(bw, "%s%s%s\n", parser.FormatFloat(s.XValues[i]), d, parser.FormatFloat(s.YValues[i]))
	}
	return bw.Flush()
}

// ReadDelimited parses a delimited-pairs file back into a series. Only the
// quantity names and descriptions and the samples are restored. Header rows
// split at the first delimiter, so only files whose delimiter passed
// CheckDelimiter read back unchanged.
func ReadDelimited(r io.Reader, delim rune) (models.Series, error) {
	var s models.Series
	d := string(delim)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		parts := strings.SplitN(text, d, 2)
		if len(parts) != 2 {
			return s, fmt.Errorf("line %d: missing delimiter %q", line, d)
		}
		switch line {
		case 1:
			s.X = models.NewQuantity(parts[0])
			s.Y = models.NewQuantity(parts[1])
			s.X.Kind, s.Y.Kind = models.KindIndependent, models.KindDependent
		case 2:
			s.X.Description, s.Y.Description = parts[0], parts[1]
		default:
			x, err := parseSample(parts[0])
			if err != nil {
				return s, fmt.Errorf("line %d: %w", line, err)
			}
			y, err := parseSample(parts[1])
			if err != nil {
				return s, fmt.Errorf("line %d: %w", line, err)
			}
			s.XValues = append(s.XValues, x)
			s.YValues = append(s.YValues, y)
		}
	}
	if err := scanner.Err(); err != nil {
		return s, err
	}
	if line < 2 {
		return s, fmt.Errorf("missing header rows")
	}
	return s, nil
}

// FileName returns the text file name of a series.
func FileName(s models.Series) string {
	return strings.NewReplacer("/", "-", `\`, "-").Replace(s.Label) + TextExt
}

// WriteFiles writes one text file per series into dir and returns the
// written paths in series order. Existing files are overwritten.
func WriteFiles(dir string, list []models.Series, format Format, delim rune) ([]string, error) {
	if format != FormatPairedList && format != FormatDelimited {
		return nil, fmt.Errorf("format %q is not a text format", format)
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	paths := make([]string, 0, len(list))
	for _, s := range list {
		path := filepath.Join(dir, FileName(s))
		if err := writeFile(path, s, format, delim); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, s models.Series, format Format, delim rune) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if format == FormatPairedList {
		return WritePairedList(f, s)
	}
	return WriteDelimited(f, s, delim)
}

func parseSample(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sample %q: %w", s, err)
	}
	return v, nil
}
