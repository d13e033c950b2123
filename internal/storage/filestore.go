package storage

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mfauzanap/event-registration/internal"
)

// FileStore writes uploaded files to local disk under a single directory and
// hands back paths suitable for serving under the uploads URL prefix.
type FileStore struct {
	dir          string
	baseURL      string
	maxSizeBytes int64
	logger       *slog.Logger
}

func NewFileStore(dir, baseURL string, maxSizeBytes int64, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{
		dir:          dir,
		baseURL:      strings.TrimRight(baseURL, "/"),
		maxSizeBytes: maxSizeBytes,
		logger:       logger,
	}, nil
}

// Save streams one multipart file to disk. acceptedTypes is a comma-separated
// extension allow-list ("pdf,png"); empty means any extension is accepted.
func (fs *FileStore) Save(fh *multipart.FileHeader, acceptedTypes string) (string, error) {
	if fh.Size > fs.maxSizeBytes {
		return "", internal.NewValidationError(
			fmt.Sprintf("file %s exceeds the %d byte limit", fh.Filename, fs.maxSizeBytes),
			internal.ErrCodeFileTooLarge)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	if !extensionAccepted(ext, acceptedTypes) {
		return "", internal.NewValidationError(
			fmt.Sprintf("file type .%s is not accepted for this field", ext),
			internal.ErrCodeFileTypeRejected)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString()
	if ext != "" {
		name = name + "." + ext
	}
	dstPath := filepath.Join(fs.dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("write file: %w", err)
	}

	fs.logger.Info("file stored", "original_name", fh.Filename, "stored_as", name, "size", fh.Size)

	return fs.baseURL + "/" + name, nil
}

// Remove deletes a previously stored file by its public path. Missing files
// are not an error.
func (fs *FileStore) Remove(publicPath string) error {
	name := filepath.Base(publicPath)
	err := os.Remove(filepath.Join(fs.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the on-disk directory, for static serving.
func (fs *FileStore) Dir() string {
	return fs.dir
}

func extensionAccepted(ext, acceptedTypes string) bool {
	if strings.TrimSpace(acceptedTypes) == "" {
		return true
	}
	for _, t := range strings.Split(acceptedTypes, ",") {
		t = strings.TrimPrefix(strings.TrimSpace(strings.ToLower(t)), ".")
		if t != "" && t == ext {
			return true
		}
	}
	return false
}
