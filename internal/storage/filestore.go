package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore accepts uploaded blobs and hands back stable reference
// strings. The rest of the app only ever stores and forwards those
// references; nothing outside this package touches file bytes.
type FileStore interface {
	// Save writes the upload under the given subdirectory and returns
	// the reference to store.
	Save(subdir string, file *multipart.FileHeader) (string, error)
}

// LocalFileStore keeps uploads on the local disk under a base directory.
type LocalFileStore struct {
	baseDir string
}

func NewLocalFileStore(baseDir string) (*LocalFileStore, error) {
	for _, dir := range []string{baseDir, filepath.Join(baseDir, "polls"), filepath.Join(baseDir, "profiles")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &LocalFileStore{baseDir: baseDir}, nil
}

// Save stores the upload with a uuid-prefixed, sanitized name and
// returns "subdir/name".
func (s *LocalFileStore) Save(subdir string, file *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(file.Filename))
	ref := filepath.ToSlash(filepath.Join(subdir, name))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.baseDir, subdir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return ref, nil
}

// sanitizeFilename strips path separators and other characters that have
// no business in a stored file name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(" ", "_", "..", "_", "/", "_", "\\", "_")
	cleaned := replacer.Replace(name)
	if cleaned == "" || cleaned == "." {
		cleaned = "upload"
	}
	return cleaned
}
