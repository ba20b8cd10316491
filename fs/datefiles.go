package fs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DateFile is a file named after a calendar date, e.g. 2024-03-15.md.
type DateFile struct {
	Date string // YYYY-MM-DD
	Path string
}

// Time returns midnight of the file's date in loc.
func (f DateFile) Time(loc *time.Location) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", f.Date, loc)
	return t
}

// ListDateFiles returns the files in dir with extension ext whose stem
// is a YYYY-MM-DD date, sorted by date. A missing dir yields nothing.
func ListDateFiles(dir, ext string) ([]DateFile, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var files []DateFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ext)
		if _, err := time.Parse("2006-01-02", stem); err != nil {
			continue
		}
		files = append(files, DateFile{Date: stem, Path: filepath.Join(dir, entry.Name())})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Date != files[j].Date {
			return files[i].Date < files[j].Date
		}
		return files[i].Path < files[j].Path
	})
	return files, nil
}
