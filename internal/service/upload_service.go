package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var (
	ErrUploadNotImage = errors.New("only image files are allowed")
	ErrUploadTooLarge = errors.New("image exceeds the upload size limit")
	ErrUploadEmpty    = errors.New("uploaded file is empty")
)

var imageExtensions = map[string]string{
	"png":  ".png",
	"jpeg": ".jpg",
	"gif":  ".gif",
	"webp": ".webp",
}

// StoredImage describes a saved upload.
type StoredImage struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`
	Format   string `json:"format"`
}

// UploadService writes images under dir and serves them from urlPath.
type UploadService struct {
	dir      string
	urlPath  string
	maxBytes int64
	now      func() time.Time
}

// NewUploadService creates an UploadService instance.
func NewUploadService(dir, urlPath string, maxBytes int64) *UploadService {
	return &UploadService{
		dir:      dir,
		urlPath:  "/" + strings.Trim(urlPath, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Store validates that r holds a supported image and saves it under a
// dated uuid file name. The extension follows the detected format, not
// the client supplied name.
func (s *UploadService) Store(r io.Reader) (*StoredImage, error) {
	limit := s.maxBytes
	if limit <= 0 {
		limit = 10 << 20
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrUploadEmpty
	}
	if int64(len(data)) > limit {
		return nil, ErrUploadTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUploadNotImage
	}
	ext, ok := imageExtensions[format]
	if !ok || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrUploadNotImage
	}

	// 创建上传目录
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	filename := fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.New().String(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	return &StoredImage{
		URL:      path.Join(s.urlPath, filename),
		Filename: filename,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Size:     int64(len(data)),
		Format:   format,
	}, nil
}
