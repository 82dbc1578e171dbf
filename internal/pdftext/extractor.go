// Package pdftext is the boundary to the upstream PDF-to-text collaborator.
// The statement parser only consumes plain text lines; this package turns a
// source document into that text, either by running pdftotext or by reading
// pre-extracted .txt pages directly.
package pdftext

// TextExtractor defines the interface for extracting text from source documents.
// This interface allows for dependency injection and makes the statement parser
// testable by providing different implementations for production and testing.
type TextExtractor interface {
	// ExtractText extracts the page text of the document at the given path.
	ExtractText(path string) (string, error)
}

// MockExtractor implements TextExtractor for testing purposes.
// It returns predefined text instead of reading a document.
type MockExtractor struct {
	MockText string
	MockErr  error
}

// NewMockExtractor creates a new MockExtractor with the given mock data.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{MockText: mockText, MockErr: mockErr}
}

// ExtractText returns the predefined mock text or error.
func (e *MockExtractor) ExtractText(path string) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
