// Package assets uploads course media (thumbnail, trailer) to S3-compatible
// object storage and returns the public URL to store on the draft.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrUploadsDisabled is returned when no bucket is configured.
	ErrUploadsDisabled = errors.New("media uploads are not configured")

	// ErrUnsupportedFile rejects a file whose extension does not fit the slot.
	ErrUnsupportedFile = errors.New("unsupported file type")
)

var allowedExt = map[domain.AssetKind]map[string]bool{
	domain.AssetThumbnail:    {".jpg": true, ".jpeg": true, ".png": true, ".webp": true},
	domain.AssetTrailer:      {".mp4": true, ".mov": true, ".webm": true},
	domain.AssetLectureVideo: {".mp4": true, ".mov": true, ".webm": true},
}

// Config describes the object store.
type Config struct {
	Endpoint      string
	Bucket        string
	Region        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// Enabled reports whether uploads can run.
func (c Config) Enabled() bool { return c.Bucket != "" }

// ObjectPutter is the part of *s3.Client the uploader uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds a path-style S3 client for cfg. A custom endpoint makes
// it work against MinIO and other S3-compatible stores.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, fmt.Errorf("loading s3 config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	}), nil
}

// removeDisableGzip drops a finalize step that breaks request signing on
// some S3-compatible stores.
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}

// Uploader puts local media files into the bucket.
type Uploader struct {
	client ObjectPutter
	cfg    Config
	newKey func() string
	log    zerolog.Logger
}

func NewUploader(client ObjectPutter, cfg Config, log zerolog.Logger) *Uploader {
	return &Uploader{
		client: client,
		cfg:    cfg,
		newKey: uuid.NewString,
		log:    log.With().Str("component", "assets").Logger(),
	}
}

// Upload reads localPath and stores it under the course's prefix. The
// returned FileRef keeps the local path and carries the public URL.
func (u *Uploader) Upload(ctx context.Context, courseID string, kind domain.AssetKind, localPath string) (domain.FileRef, error) {
	if !u.cfg.Enabled() {
		return domain.FileRef{}, ErrUploadsDisabled
	}
	ext := strings.ToLower(filepath.Ext(localPath))
	allowed, ok := allowedExt[kind]
	if !ok {
		return domain.FileRef{}, fmt.Errorf("unknown asset kind %q", kind)
	}
	if !allowed[ext] {
		return domain.FileRef{}, fmt.Errorf("%s %q: %w", kind, filepath.Base(localPath), ErrUnsupportedFile)
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return domain.FileRef{}, fmt.Errorf("reading %s: %w", localPath, err)
	}

	key := u.objectKey(courseID, kind, ext)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			u.log.Error().Str("code", apiErr.ErrorCode()).Str("key", key).Msg("upload rejected")
			return domain.FileRef{}, fmt.Errorf("uploading %s: %s: %w", kind, apiErr.ErrorMessage(), err)
		}
		return domain.FileRef{}, fmt.Errorf("uploading %s: %w", kind, err)
	}

	u.log.Info().Str("key", key).Int("bytes", len(data)).Msg("asset uploaded")
	return domain.FileRef{LocalPath: localPath, RemoteURL: u.PublicURL(key)}, nil
}

func (u *Uploader) objectKey(courseID string, kind domain.AssetKind, ext string) string {
	prefix := courseID
	if prefix == "" {
		prefix = "unassigned"
	}
	return fmt.Sprintf("courses/%s/%s/%s%s", prefix, kind, u.newKey(), ext)
}

// PublicURL maps an object key to the URL readers fetch it from.
func (u *Uploader) PublicURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	if u.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.cfg.Endpoint, "/"), u.cfg.Bucket, key)
	}
	region := u.cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", region, u.cfg.Bucket, key)
}
