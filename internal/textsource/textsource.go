// Package textsource resolves document text given either inline or as a file.
package textsource

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spigell/careercompass/internal/extract"
)

// Source describes where a document's text comes from.
type Source struct {
	// Name is used in error messages, e.g. "job description".
	Name string
	// Value is text passed inline through a flag or prompt.
	Value string
	// File points to a document holding the text. When set it takes precedence
	// over Value. PDF and DOCX files are extracted; anything else is read as text.
	File string
}

// Load returns the trimmed text of src. Empty text is returned as is; deciding
// whether it is acceptable is up to the caller. Errors are only returned when a
// configured file cannot be read or parsed.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "document"
	}

	file := strings.TrimSpace(src.File)
	if file == "" {
		return strings.TrimSpace(src.Value), nil
	}

	if _, err := extract.DetectFormat(file); errors.Is(err, extract.ErrUnsupported) {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	text, err := extract.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return text, nil
}

// Configured reports whether src names a file or carries inline text.
func Configured(src Source) bool {
	return strings.TrimSpace(src.File) != "" || strings.TrimSpace(src.Value) != ""
}
