package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManaged(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want bool
	}{
		{name: "managed upload", ref: "/uploads/abc.jpg", want: true},
		{name: "default placeholder", ref: DefaultImage, want: false},
		{name: "external url", ref: "https://example.com/pic.jpg", want: false},
		{name: "empty", ref: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Managed(tt.ref))
		})
	}
}

func uploadFixture(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(32<<20))

	_, header, err := req.FormFile("image")
	assert.NoError(t, err)
	return header
}

func TestDiskStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	assert.NoError(t, err)

	header := uploadFixture(t, "Pic.JPG", []byte("fake image bytes"))

	ref, err := store.Save(header)
	assert.NoError(t, err)
	assert.True(t, Managed(ref))
	assert.True(t, strings.HasSuffix(ref, ".jpg"), "extension should be lowercased: %s", ref)

	name := strings.TrimPrefix(ref, ManagedPrefix)
	data, err := os.ReadFile(filepath.Join(dir, "uploads", name))
	assert.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), data)

	// First remove deletes the file.
	assert.NoError(t, store.Remove(ref))
	_, err = os.Stat(filepath.Join(dir, "uploads", name))
	assert.True(t, os.IsNotExist(err))

	// Removing an already-gone file is success, not an error.
	assert.NoError(t, store.Remove(ref))
}

func TestDiskStore_RemoveIgnoresUnmanagedRefs(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	assert.NoError(t, err)

	assert.NoError(t, store.Remove("https://example.com/pic.jpg"))
	assert.NoError(t, store.Remove(DefaultImage))
	assert.NoError(t, store.Remove(""))
}

func TestDiskStore_RemoveStripsPathSegments(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	assert.NoError(t, err)

	// A hostile ref must not escape the upload dir.
	outside := filepath.Join(dir, "secret.txt")
	assert.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	assert.NoError(t, store.Remove(ManagedPrefix+"../secret.txt"))

	_, err = os.Stat(outside)
	assert.NoError(t, err, "file outside the upload dir must survive")
}
