package file

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/folio-space/core/internal/config"
)

// s3Uploader pushes uploads to an S3-compatible bucket (AWS, R2, MinIO).
type s3Uploader struct {
	client *s3.Client
	cfg    config.S3Config
}

func newS3Uploader(cfg config.S3Config) *s3Uploader {
	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: cfg.PathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(normalizeEndpoint(cfg.Endpoint))
	}
	return &s3Uploader{client: s3.New(opts), cfg: cfg}
}

// Put uploads payload under key and returns the public URL.
func (u *s3Uploader) Put(ctx context.Context, key, contentType string, payload []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}
	return u.publicURL(key), nil
}

func (u *s3Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

// publicURL prefers the custom domain, then falls back to the endpoint in
// path-style or virtual-host form.
func (u *s3Uploader) publicURL(key string) string {
	if u.cfg.CustomDomain != "" {
		return strings.TrimSuffix(normalizeEndpoint(u.cfg.CustomDomain), "/") + "/" + key
	}
	endpoint := strings.TrimSuffix(normalizeEndpoint(u.cfg.Endpoint), "/")
	if u.cfg.PathStyle {
		return endpoint + "/" + u.cfg.Bucket + "/" + key
	}
	scheme, host, ok := strings.Cut(endpoint, "://")
	if !ok {
		return endpoint + "/" + key
	}
	return scheme + "://" + u.cfg.Bucket + "." + host + "/" + key
}

// keyFromURL recovers the object key from a URL produced by publicURL, or ""
// when the URL points elsewhere.
func (u *s3Uploader) keyFromURL(fileURL string) string {
	base := u.publicURL("")
	if base == "" || !strings.HasPrefix(fileURL, base) {
		return ""
	}
	return strings.TrimPrefix(fileURL, base)
}

func normalizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.Contains(raw, "://") {
		return "https://" + raw
	}
	return raw
}
