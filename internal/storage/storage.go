package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Store persists uploaded event images on local disk under a single
// directory. Stored files are served as static assets by the router.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// SanitizeFilename strips path components and replaces each run of
// characters outside [A-Za-z0-9_.-] with a single underscore. A name that
// sanitizes to nothing usable returns "", which callers treat as
// "no upload".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	if name == "" {
		return ""
	}
	return name
}

// Save writes the upload under its sanitized filename and returns the
// stored name. An existing file with the same name is overwritten.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	name := SanitizeFilename(fh.Filename)
	if name == "" {
		return "", fmt.Errorf("filename %q sanitizes to nothing", fh.Filename)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return name, nil
}
