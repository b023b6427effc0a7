package uploads

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	name string
	data string
}

// fileHeaders round-trips files through a multipart body so the headers are real.
func fileHeaders(t *testing.T, files ...upload) []*multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		part, err := w.CreateFormFile("photos", f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["photos"]
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStorage(dir)
	require.NoError(t, err)
	s.now = fixedClock(1718000000000)

	fh := fileHeaders(t, upload{"Summer Trip.JPG", "jpeg bytes"})[0]
	path, err := s.Save(fh)
	require.NoError(t, err)
	assert.Equal(t, "Assets/1718000000000-summer-trip.jpg", path)

	data, err := os.ReadFile(filepath.Join(dir, "1718000000000-summer-trip.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))
}

func TestSaveAllKeepsOrderAndAvoidsCollisions(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStorage(dir)
	require.NoError(t, err)
	s.now = fixedClock(1000)

	paths, err := s.SaveAll(fileHeaders(t,
		upload{"a.png", "first"},
		upload{"a.png", "second"},
		upload{"b.gif", "third"},
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/1000-a.png", "Assets/1000-a-1.png", "Assets/1000-b.gif"}, paths)

	for i, want := range []string{"first", "second", "third"} {
		data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(paths[i], "Assets/")))
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestNewStorageCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "Assets")
	s, err := NewStorage(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStorage(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "present.jpg"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	got, err := s.Resolve("present.jpg")
	require.NoError(t, err)
	assert.Equal(t, "present.jpg", filepath.Base(got))

	_, err = s.Resolve("/present.jpg")
	assert.NoError(t, err)

	for _, rel := range []string{"missing.jpg", "sub", "", "../../etc/passwd", "sub/../../outside.jpg"} {
		_, err := s.Resolve(rel)
		assert.ErrorIs(t, err, ErrNotFound, rel)
	}
}

func TestFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	tests := []struct {
		original string
		want     string
	}{
		{"photo.jpg", "1700000000123-photo.jpg"},
		{"My   Holiday Pic.JPEG", "1700000000123-my-holiday-pic.jpeg"},
		{"Café Crème.png", "1700000000123-cafe-creme.png"},
		{"../../evil.png", "1700000000123-evil.png"},
		{`C:\Users\ada\beach day.webp`, "1700000000123-beach-day.webp"},
		{"noext", "1700000000123-noext"},
		{"???.gif", "1700000000123-file.gif"},
		{"archive.tar.gz", "1700000000123-archive-tar.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(now, tt.original))
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("  Hello \t World  "))
	assert.Equal(t, "a-b", Slugify("a - b"))
	assert.Equal(t, "snake_case", Slugify("snake_case"))
	assert.Equal(t, "file", Slugify("!!!"))
	assert.Len(t, Slugify(strings.Repeat("x", 200)), maxSlugLen)
}
