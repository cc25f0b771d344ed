// Package parser provides Fluent report and reference file parsing.
package parser

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
)

// HeaderPrefix starts the line holding the quoted column names.
const HeaderPrefix = "("

// ReportExt is the file extension of Fluent report files.
const ReportExt = ".out"

// ReadLines reads all lines of a file.
// A missing file yields no lines and no error so callers can skip it.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return scanLines(f)
}

func scanLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// headerIndex returns the index of the first line starting with "(", or -1.
func headerIndex(lines []string) int {
	for i, line := range lines {
		if strings.HasPrefix(line, HeaderPrefix) {
			return i
		}
	}
	return -1
}

// ParseColumns extracts the quoted column names of the header line.
func ParseColumns(lines []string) []string {
	idx := headerIndex(lines)
	if idx < 0 {
		return nil
	}

	parts := strings.Split(lines[idx], `"`)
	var columns []string
	for i := 1; i < len(parts); i += 2 {
		columns = append(columns, parts[i])
	}
	return columns
}

// ParseRows tokenizes every non-blank line after the header line.
// Tokens stay strings; numeric parsing happens where the values are used.
func ParseRows(lines []string) [][]string {
	idx := headerIndex(lines)
	if idx < 0 {
		return nil
	}

	var rows [][]string
	for _, line := range lines[idx+1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	return rows
}

// ParseReport turns the lines of a report file into column names and rows.
func ParseReport(lines []string) (columns []string, rows [][]string) {
	return ParseColumns(lines), ParseRows(lines)
}

// DatasetName derives a dataset name from a report file path.
func DatasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadReport reads and parses one report file.
// The returned dataset is empty when the file is missing or unparseable.
func ReadReport(path string) (models.Dataset, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return models.Dataset{}, err
	}

	columns, rows := ParseReport(lines)
	return models.Dataset{
		Name:    DatasetName(path),
		Path:    path,
		Columns: columns,
		Rows:    rows,
	}, nil
}
