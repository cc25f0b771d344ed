package parser

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListReports returns the report files directly inside dir, sorted by name.
// A missing directory yields no files.
func ListReports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ReportExt) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// FindReports returns the report files of the first directory that has any,
// together with that directory. It returns no files when none of the
// directories contain reports.
func FindReports(dirs ...string) (files []string, dir string, err error) {
	for _, d := range dirs {
		files, err = ListReports(d)
		if err != nil {
			return nil, "", err
		}
		if len(files) > 0 {
			return files, d, nil
		}
	}
	return nil, "", nil
}
