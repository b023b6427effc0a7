package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PathPrefix is prepended to every stored file name. It matches the URL
// namespace the files are served under.
const PathPrefix = "Assets"

var ErrNotFound = errors.New("file not found")

// Storage writes uploaded files into one directory.
type Storage struct {
	dir string
	now func() time.Time
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Storage{dir: dir, now: time.Now}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

// Save writes one attachment and returns its stored path, e.g.
// "Assets/1718000000000-summer-trip.jpg".
func (s *Storage) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	name := FileName(s.now(), fh.Filename)
	f, name, err := s.create(name)
	if err != nil {
		return "", err
	}
	destPath := filepath.Join(s.dir, name)

	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		_ = os.Remove(destPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(destPath)
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return PathPrefix + "/" + name, nil
}

// SaveAll saves files in order. Files written before a failure stay on disk;
// the paths returned so far are returned alongside the error.
func (s *Storage) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := s.Save(fh)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// create opens name exclusively. Two attachments sharing a name within the same
// millisecond get "-1", "-2", ... appended.
func (s *Storage) create(name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; i <= 100; i++ {
		f, err := os.OpenFile(filepath.Join(s.dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("failed to create file: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
	return nil, "", fmt.Errorf("failed to create file: too many name collisions for %q", name)
}

// Resolve maps a request path relative to the upload dir onto the disk and
// rejects directory traversal. It reports ErrNotFound for missing files and
// for directories.
func (s *Storage) Resolve(rel string) (string, error) {
	absBase, err := filepath.Abs(s.dir)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	rel = strings.TrimPrefix(filepath.FromSlash(rel), string(filepath.Separator))
	absPath, err := filepath.Abs(filepath.Join(absBase, rel))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", ErrNotFound
	}

	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() {
		return "", ErrNotFound
	}
	return absPath, nil
}
