// Package storage uploads homework attachments to S3-compatible object
// storage through presigned URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/zivohub/internal/netx"
)

// DefaultExpiry is how long presigned URLs stay valid.
const DefaultExpiry = 15 * time.Minute

// ErrNotConfigured is returned by NewUploader when no bucket is set.
var ErrNotConfigured = errors.New("object storage is not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Config describes the bucket attachments go to. Endpoint is optional and
// switches to path-style addressing (MinIO, Supabase Storage S3 gateway).
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Expiry    time.Duration
}

// Uploader implements services.AttachmentStore.
type Uploader struct {
	cfg  Config
	http *http.Client

	mu      sync.Mutex
	presign *s3.PresignClient
}

// NewUploader returns an Uploader for cfg. httpClient is used for the
// presigned PUT; nil means http.DefaultClient.
func NewUploader(cfg Config, httpClient *http.Client) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = DefaultExpiry
	}
	return &Uploader{cfg: cfg, http: httpClient}, nil
}

func (u *Uploader) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.presign != nil {
		return u.presign, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(u.cfg.Region)}
	if u.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(u.cfg.AccessKey, u.cfg.SecretKey, "")))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	u.presign = s3.NewPresignClient(client)
	return u.presign, nil
}

// Put uploads body under key.
func (u *Uploader) Put(ctx context.Context, key string, body []byte, contentType string) error {
	pc, err := u.presignClient(ctx)
	if err != nil {
		return err
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := presignPutObject(pc, ctx, in, s3.WithPresignExpires(u.cfg.Expiry))
	if err != nil {
		return fmt.Errorf("presign put: %w", err)
	}

	if err := netx.UploadToPresignedURL(ctx, u.http, req.URL, body, contentType); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// URL returns a time-limited download link for key.
func (u *Uploader) URL(ctx context.Context, key string) (string, error) {
	pc, err := u.presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(u.cfg.Expiry))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}
