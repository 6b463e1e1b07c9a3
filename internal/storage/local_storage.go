package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
)

var (
	ErrFileTooLarge       = fmt.Errorf("file exceeds the maximum allowed size")
	ErrDisallowedFileType = fmt.Errorf("file type is not allowed")
)

// AllowedImageTypes lists the content types accepted for catalog media
var AllowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
}

// AllowedVideoTypes lists the content types accepted for product videos
var AllowedVideoTypes = []string{
	"video/mp4",
	"video/webm",
}

// LocalStorage stores uploads on the server's own disk and serves them from
// a static route. The default backend when S3 is not configured.
type LocalStorage struct {
	dir         string
	baseURL     string
	maxFileSize int64
}

func NewLocalStorage(dir, baseURL string, maxFileSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		dir:         dir,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxFileSize: maxFileSize,
	}, nil
}

// Save validates and writes an uploaded file, returning its public URL
func (s *LocalStorage) Save(file *multipart.FileHeader, folder string, allowedTypes []string) (string, error) {
	if file.Size > s.maxFileSize {
		return "", ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !typeAllowed(contentType, allowedTypes) {
		return "", ErrDisallowedFileType
	}

	targetDir := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	// filename carries a timestamp for humans and a UUID for uniqueness
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102150405"), uuid.NewString(), ext)
	targetPath := filepath.Join(targetDir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(targetPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.baseURL, folder, name)
	logger.Debug("File stored on local disk", map[string]interface{}{
		"path": targetPath,
		"url":  url,
		"size": file.Size,
	})
	return url, nil
}

// Delete removes a previously stored file by its public URL. URLs outside
// the storage base are ignored.
func (s *LocalStorage) Delete(fileURL string) error {
	if !strings.HasPrefix(fileURL, s.baseURL+"/") {
		return nil
	}

	relative := strings.TrimPrefix(fileURL, s.baseURL+"/")
	relative = filepath.Clean(relative)
	if strings.HasPrefix(relative, "..") {
		return nil
	}

	path := filepath.Join(s.dir, relative)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func typeAllowed(contentType string, allowedTypes []string) bool {
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
