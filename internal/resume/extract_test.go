package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_PlainTextNormalizesLineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\r\nSolar Analyst\r\n"), 0o644))

	text, err := ExtractText(path)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSolar Analyst", text)
}

func TestExtractText_UnsupportedExtension(t *testing.T) {
	_, err := ExtractText("resume.docx")
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestExtractText_MissingFile(t *testing.T) {
	_, err := ExtractText(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
