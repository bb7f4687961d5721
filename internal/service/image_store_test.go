package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pulse/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFileHeader round-trips content through a multipart form so the
// resulting header opens like a real upload.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

// pngBytes carries the PNG signature so content sniffing sees an image.
func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
}

func newTestImageStore(t *testing.T, maxSize int64) *ImageStore {
	if logger.L == nil {
		require.NoError(t, logger.InitLogger("debug", false))
	}
	basePath := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(basePath, "posts"), 0755))
	return &ImageStore{basePath: basePath, maxSize: maxSize}
}

func TestImageStore_Validate(t *testing.T) {
	store := newTestImageStore(t, 1<<20)

	tests := []struct {
		name     string
		file     *multipart.FileHeader
		wantPart string
	}{
		{"nil file is fine", nil, ""},
		{"valid png", makeFileHeader(t, "photo.png", pngBytes()), ""},
		{"valid jpeg", makeFileHeader(t, "photo.jpg", append([]byte("\xFF\xD8\xFF\xE0"), make([]byte, 64)...)), ""},
		{"disallowed extension", makeFileHeader(t, "script.exe", pngBytes()), "only jpeg, png and gif"},
		{"no extension", makeFileHeader(t, "photo", pngBytes()), "only jpeg, png and gif"},
		{"renamed text file", makeFileHeader(t, "notes.png", []byte("just some plain text, not pixels")), "not a supported image"},
		{"oversized image", makeFileHeader(t, "huge.png", append(pngBytes(), make([]byte, 1<<20)...)), "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := store.Validate(tt.file)
			if tt.wantPart == "" {
				assert.Empty(t, msg)
			} else {
				assert.Contains(t, msg, tt.wantPart)
			}
		})
	}
}

func TestImageStore_Store(t *testing.T) {
	store := newTestImageStore(t, 1<<20)
	content := pngBytes()

	relPath, err := store.Store(makeFileHeader(t, "photo.png", content))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "posts/") || strings.HasPrefix(relPath, "posts"+string(os.PathSeparator)),
		"stored path should land under posts/, got %s", relPath)
	assert.Equal(t, ".png", filepath.Ext(relPath), "original extension is kept")

	saved, err := os.ReadFile(filepath.Join(store.BasePath(), relPath))
	require.NoError(t, err)
	assert.Equal(t, content, saved)

	// A second upload of the same file never collides.
	other, err := store.Store(makeFileHeader(t, "photo.png", content))
	require.NoError(t, err)
	assert.NotEqual(t, relPath, other)
}
