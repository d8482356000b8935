package usecase

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ReadList reads a one-entry-per-line file. Entries are trimmed and blank
// lines dropped. A missing file yields an empty list.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var entries []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if entry := strings.TrimSpace(scanner.Text()); entry != "" {
			entries = append(entries, entry)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return entries, nil
}

// Excluded reports whether path ends with "/" followed by any of entries.
func Excluded(entries []string) SkipFunc {
	return func(path string) bool {
		path = filepath.ToSlash(path)
		for _, entry := range entries {
			if strings.HasSuffix(path, "/"+entry) {
				return true
			}
		}

		return false
	}
}
