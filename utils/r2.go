package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStoreConfig describes an S3-compatible bucket (AWS S3, Cloudflare R2).
type ObjectStoreConfig struct {
	Bucket          string
	Endpoint        string // empty for AWS S3
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string // base URL objects are served from
}

// ObjectStore uploads generated documents and returns their public URLs.
type ObjectStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewObjectStore(ctx context.Context, cfg ObjectStoreConfig) (*ObjectStore, error) {
	if cfg.Bucket == "" || cfg.PublicURL == "" {
		return nil, errors.New("missing required object store settings")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load object store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &ObjectStore{client: client, bucket: cfg.Bucket, publicURL: cfg.PublicURL}, nil
}

// Upload stores body under key and returns the object's public URL.
func (s *ObjectStore) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	key = path.Base(key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return PublicObjectURL(s.publicURL, key), nil
}

// PublicObjectURL joins a public base URL and an object key.
func PublicObjectURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(key)
}
