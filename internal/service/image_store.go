package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pulse/pkg/config"
	"pulse/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Extensions accepted for post images.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Content types the sniffed file data must match. A renamed non-image
// fails here even when its extension passes.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ImageStore saves uploaded post images on disk under the configured
// upload directory.
type ImageStore struct {
	basePath string
	maxSize  int64
}

func NewImageStore() (*ImageStore, error) {
	basePath := "uploads"
	if config.GlobalConfig.App.UploadDir != "" {
		basePath = config.GlobalConfig.App.UploadDir
	}
	maxSize := config.GlobalConfig.App.MaxUploadSizeMB * 1024 * 1024
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}

	if err := os.MkdirAll(filepath.Join(basePath, "posts"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &ImageStore{basePath: basePath, maxSize: maxSize}, nil
}

// Validate reports why a file is not an acceptable image, or "" when
// it is. A nil file is fine, the image is optional.
func (s *ImageStore) Validate(file *multipart.FileHeader) string {
	if file == nil {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "only jpeg, png and gif images are allowed"
	}
	if file.Size > s.maxSize {
		return fmt.Sprintf("image exceeds the %d MB limit", s.maxSize/(1024*1024))
	}

	src, err := file.Open()
	if err != nil {
		return "could not read the uploaded file"
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "could not read the uploaded file"
	}
	if !allowedImageTypes[http.DetectContentType(head[:n])] {
		return "file content is not a supported image"
	}
	return ""
}

// Store writes the upload under posts/ with a uuid-based name and
// returns the relative path persisted on the post.
func (s *ImageStore) Store(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	relPath := filepath.Join("posts", uuid.New().String()+ext)
	fullPath := filepath.Join(s.basePath, relPath)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	logger.L.Info("Image stored",
		zap.String("path", relPath),
		zap.Int64("size", file.Size))

	return relPath, nil
}

// BasePath is the directory uploads are served from.
func (s *ImageStore) BasePath() string {
	return s.basePath
}
