// Package extract produces plain text from uploaded documents.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedType = fmt.Errorf("unsupported file type")
	ErrEmptyDocument   = fmt.Errorf("no text could be extracted from document")
)

// FromFile extracts the text of a PDF, DOCX or TXT file. The extension
// decides the format; anything else is rejected.
func FromFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = fromPDF(path)
	case ".docx":
		text, err = fromDOCX(path)
	case ".txt":
		text, err = fromTXT(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// Supported reports whether the filename has an extractable extension.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

func fromTXT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return string(data), nil
}
