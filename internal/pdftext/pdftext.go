package pdftext

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dp-213/Inso-liquiplanung/internal/logging"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// PdftotextExtractor extracts text with the pdftotext command-line tool.
// The -layout flag keeps the column positions, which the line parser relies
// on for the trailing amount.
type PdftotextExtractor struct{}

// NewPdftotextExtractor creates a new PdftotextExtractor instance.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{}
}

// ExtractText extracts text from a PDF file using the pdftotext command.
func (e *PdftotextExtractor) ExtractText(pdfPath string) (string, error) {
	tempFile := pdfPath + ".txt"

	cmd := exec.Command("pdftotext", "-layout", pdfPath, tempFile)
	if err := cmd.Run(); err != nil {
		log.WithError(err).Error("Failed to run pdftotext command",
			logging.Field{Key: logging.FieldFile, Value: pdfPath})
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}

	output, err := os.ReadFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("error reading extracted text: %w", err)
	}

	if err := os.Remove(tempFile); err != nil {
		log.WithError(err).Warn("Failed to remove temporary text file",
			logging.Field{Key: logging.FieldFile, Value: tempFile})
	}

	return string(output), nil
}

// PlainTextExtractor reads pre-extracted page text as-is.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a new PlainTextExtractor instance.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// ExtractText reads the file content without any conversion.
func (e *PlainTextExtractor) ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading text file: %w", err)
	}
	return string(data), nil
}

// ForFile returns the extractor matching a document's extension: pdftotext
// for .pdf, the plain reader for everything else.
func ForFile(path string) TextExtractor {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewPdftotextExtractor()
	}
	return NewPlainTextExtractor()
}
