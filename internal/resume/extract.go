package resume

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText pulls the plain text from a PDF document.
func ExtractPDFText(r io.ReaderAt, size int64) (string, error) {
	pdfReader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
	}
	return strings.TrimSpace(textBuilder.String()), nil
}

// ExtractText reads resume text from a file, dispatching on extension.
// PDF and plain-text files are supported.
func ExtractText(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return "", err
		}
		return ExtractPDFText(f, info.Size())
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		text := strings.ReplaceAll(string(data), "\r\n", "\n")
		return strings.TrimSpace(text), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}
