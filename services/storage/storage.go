package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"amedick/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// File is one uploaded form part.
type File struct {
	Field    string
	Filename string
	Content  io.Reader
}

// StorageService stores uploaded files and returns their public URL.
type StorageService interface {
	Upload(ctx context.Context, file File, folder string) (string, error)
	Delete(ctx context.Context, publicID string) error
}

var ErrNotConfigured = errors.New("cloudinary credentials not set in configuration")

// CloudinaryStorageService implements StorageService using Cloudinary.
type CloudinaryStorageService struct {
	cld        *cloudinary.Cloudinary
	rootFolder string
}

// NewCloudinaryStorageFromConfig builds the service from CLOUDINARY_* settings.
func NewCloudinaryStorageFromConfig() (*CloudinaryStorageService, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld, rootFolder: cfg.CloudinaryFolder}, nil
}

// Upload stores the file under rootFolder/folder and returns its secure URL.
func (s *CloudinaryStorageService) Upload(ctx context.Context, file File, folder string) (string, error) {
	params := uploader.UploadParams{
		Folder:       path.Join(s.rootFolder, folder),
		PublicID:     publicName(file),
		ResourceType: "auto",
	}
	resp, err := s.cld.Upload.Upload(ctx, file.Content, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", file.Field, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected %s: %s", file.Field, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Delete removes an uploaded asset by public ID.
func (s *CloudinaryStorageService) Delete(ctx context.Context, publicID string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary refused to delete %s: %s", publicID, resp.Error.Message)
	}
	return nil
}

// publicName is the form field plus the original base name without extension.
func publicName(file File) string {
	base := strings.TrimSuffix(path.Base(file.Filename), path.Ext(file.Filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if base == "" || base == "_" || base == "." {
		return file.Field
	}
	return file.Field + "_" + base
}
