package upload

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores an image and returns its public URL. Only URLs are ever
// persisted; raw bytes stop here.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}

// CloudinaryUploader uploads images to Cloudinary.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader creates an Uploader from a CLOUDINARY_URL style DSN.
func NewCloudinaryUploader(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

// Upload stores one image and returns its secure URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: u.folder})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return res.SecureURL, nil
}
