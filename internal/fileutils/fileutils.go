// Package fileutils provides common file operations used throughout the application.
package fileutils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// IsStatementFile reports whether a file name looks like a daily account
// statement. Payment receipts, mails and contract documents that live in the
// same folders are excluded; real statements carry a "#<number>" marker.
func IsStatementFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".pdf" && ext != ".txt" {
		return false
	}
	for _, skip := range []string{"Zahlbeleg", "eMail", "Massekreditvertrag", "Abrechnung"} {
		if strings.Contains(name, skip) {
			return false
		}
	}
	return strings.Contains(name, "#")
}

// FindStatementFiles walks a directory tree and returns all statement files
// in sorted order. Unreadable subdirectories are logged and skipped.
func FindStatementFiles(root string) ([]string, error) {
	if !DirectoryExists(root) {
		return nil, fmt.Errorf("directory does not exist: %s", root)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).WithField("path", path).Warn("Skipping unreadable path")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsStatementFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
