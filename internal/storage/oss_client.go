package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/spec-kit/hr-portal/internal/config"
)

// OSSClient implements ObjectStore on top of an Aliyun OSS bucket.
type OSSClient struct {
	bucket        *oss.Bucket
	bucketName    string
	endpoint      string
	publicBaseURL string
}

// NewOSSClient connects to the configured bucket.
func NewOSSClient(cfg config.StorageConfig) (*OSSClient, error) {
	client, err := oss.New("https://"+cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %s: %w", cfg.Bucket, err)
	}
	return &OSSClient{
		bucket:        bucket,
		bucketName:    cfg.Bucket,
		endpoint:      cfg.Endpoint,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload writes the object under key with no-overwrite semantics and
// returns the storage path.
func (c *OSSClient) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	opts := []oss.Option{
		oss.ForbidOverWrite(true),
		oss.ContentType(contentType),
	}
	if err := c.bucket.PutObject(key, body, opts...); err != nil {
		return "", err
	}
	return key, nil
}

// PublicURL resolves the public address for an object key.
func (c *OSSClient) PublicURL(key string) string {
	if c.publicBaseURL != "" {
		return c.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.%s/%s", c.bucketName, c.endpoint, key)
}

// DeleteByPublicURL removes the object a public URL points at.
func (c *OSSClient) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := objectKeyFromURL(publicURL, c.publicBaseURL)
	if err != nil {
		return err
	}
	return c.bucket.DeleteObject(key)
}

// objectKeyFromURL recovers the object key from a stored public URL. With a
// CDN base configured the key is the remainder after the base; otherwise it
// is the URL path without the leading slash.
func objectKeyFromURL(publicURL, publicBaseURL string) (string, error) {
	if publicBaseURL != "" && strings.HasPrefix(publicURL, publicBaseURL+"/") {
		key := strings.TrimPrefix(publicURL, publicBaseURL+"/")
		if key == "" {
			return "", fmt.Errorf("no object key in url %q", publicURL)
		}
		return key, nil
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", publicURL, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("no object key in url %q", publicURL)
	}
	return key, nil
}
