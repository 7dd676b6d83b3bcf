// Package extract turns résumé files into plain text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// ErrUnsupported is wrapped by Error when the file extension is not known.
var ErrUnsupported = errors.New("unsupported file format")

// Error describes a file that could not be turned into text.
type Error struct {
	File   string
	Format Format
	Err    error
}

func (e *Error) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("extract %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("extract %s (%s): %v", e.File, e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	xmlTags    = regexp.MustCompile(`<[^>]+>`)
	blanks     = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
	emptyLines = regexp.MustCompile(`\n{2,}`)
)

// DetectFormat maps a file name to its format by extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text", ".md":
		return FormatText, nil
	default:
		return "", ErrUnsupported
	}
}

// ReadFile reads path from disk and extracts its text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{File: path, Err: err}
	}
	return Text(path, data)
}

// Text extracts plain text from data, choosing the parser by the extension of
// filename. Parser panics on corrupt input are returned as errors.
func Text(filename string, data []byte) (text string, err error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return "", &Error{File: filename, Err: fmt.Errorf("%w: %q", err, filepath.Ext(filename))}
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &Error{File: filename, Format: format, Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	switch format {
	case FormatPDF:
		text, err = pdfText(data)
	case FormatDOCX:
		text, err = docxText(data)
	default:
		text = string(data)
	}
	if err != nil {
		return "", &Error{File: filename, Format: format, Err: err}
	}

	return normalizeWhitespace(text), nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to get pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return buf.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = xmlTags.ReplaceAllString(content, " ")
	return html.UnescapeString(content), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = blanks.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = emptyLines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
