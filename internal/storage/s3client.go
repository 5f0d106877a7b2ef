package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader pushes seller assets (logos, store photos) to S3. When the
// bucket is not configured the uploader stays disabled and callers fall
// back to local disk for development.
type Uploader struct {
	Client *s3.Client
	Bucket string
}

// NewUploader builds an S3 uploader from the environment. A missing
// bucket is not an error; it just disables S3.
func NewUploader(ctx context.Context) (*Uploader, error) {
	bucket := os.Getenv("SELLER_ASSETS_S3_BUCKET")
	if bucket == "" {
		return &Uploader{Client: nil, Bucket: ""}, nil
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = "ap-south-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS default config: %w", err)
	}
	return &Uploader{Client: s3.NewFromConfig(cfg), Bucket: bucket}, nil
}

// Enabled reports whether S3 uploads are configured
func (u *Uploader) Enabled() bool { return u != nil && u.Client != nil && u.Bucket != "" }

// UploadImage uploads a file stream under the given key prefix and
// returns the public CDN URL
func (u *Uploader) UploadImage(ctx context.Context, keyPrefix string, fileHeader *multipart.FileHeader, file multipart.File) (string, error) {
	if !u.Enabled() {
		return "", fmt.Errorf("s3 uploader not configured")
	}

	// Reset file pointer
	file.Seek(0, 0)

	objectKey := fmt.Sprintf("%s/%d%s", strings.Trim(keyPrefix, "/"), time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &u.Bucket,
		Key:    &objectKey,
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	cdnBase := os.Getenv("ASSETS_CDN_BASE_URL")
	if cdnBase == "" {
		cdnBase = "https://assets.spicelink.com"
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(cdnBase, "/"), objectKey), nil
}

// UploadToLocal saves a file under ./uploads for local development and
// returns the URL served by the router's static file handler
func UploadToLocal(keyPrefix string, fileHeader *multipart.FileHeader, file multipart.File) (string, error) {
	// Reset file pointer
	file.Seek(0, 0)

	uploadsDir := filepath.Join("./uploads", keyPrefix)
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	filePath := filepath.Join(uploadsDir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fmt.Sprintf("/uploads/%s/%s", strings.Trim(keyPrefix, "/"), filename), nil
}
