package assets

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.inputs = append(f.inputs, in)
	b, _ := io.ReadAll(in.Body)
	f.bodies = append(f.bodies, b)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestUploader(p ObjectPutter, cfg Config) *Uploader {
	u := NewUploader(p, cfg, zerolog.Nop())
	u.newKey = func() string { return "fixed" }
	return u
}

func TestUpload_PutsObjectAndReturnsPublicURL(t *testing.T) {
	putter := &fakePutter{}
	u := newTestUploader(putter, Config{Bucket: "media", PublicBaseURL: "https://cdn.example.com/"})
	path := writeTempFile(t, "cover.PNG", "png-bytes")

	ref, err := u.Upload(context.Background(), "c-1", domain.AssetThumbnail, path)

	require.NoError(t, err)
	assert.Equal(t, path, ref.LocalPath)
	assert.Equal(t, "https://cdn.example.com/courses/c-1/thumbnail/fixed.png", ref.RemoteURL)
	assert.True(t, ref.Uploaded())

	require.Len(t, putter.inputs, 1)
	in := putter.inputs[0]
	assert.Equal(t, "media", aws.ToString(in.Bucket))
	assert.Equal(t, "courses/c-1/thumbnail/fixed.png", aws.ToString(in.Key))
	assert.Equal(t, "image/png", aws.ToString(in.ContentType))
	assert.Equal(t, int64(9), aws.ToInt64(in.ContentLength))
	assert.Equal(t, "png-bytes", string(putter.bodies[0]))
}

func TestUpload_LectureVideoKey(t *testing.T) {
	putter := &fakePutter{}
	u := newTestUploader(putter, Config{Bucket: "media", PublicBaseURL: "https://cdn.example.com"})

	ref, err := u.Upload(context.Background(), "c-9", domain.AssetLectureVideo, writeTempFile(t, "intro.mov", "mov"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/courses/c-9/lecture-video/fixed.mov", ref.RemoteURL)
}

func TestUpload_Disabled(t *testing.T) {
	u := newTestUploader(&fakePutter{}, Config{})
	_, err := u.Upload(context.Background(), "c-1", domain.AssetThumbnail, "x.png")
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}

func TestUpload_RejectsWrongExtension(t *testing.T) {
	putter := &fakePutter{}
	u := newTestUploader(putter, Config{Bucket: "media"})

	_, err := u.Upload(context.Background(), "c-1", domain.AssetTrailer, writeTempFile(t, "clip.png", "x"))

	assert.ErrorIs(t, err, ErrUnsupportedFile)
	assert.Empty(t, putter.inputs)
}

func TestUpload_MissingFile(t *testing.T) {
	u := newTestUploader(&fakePutter{}, Config{Bucket: "media"})
	_, err := u.Upload(context.Background(), "c-1", domain.AssetTrailer, filepath.Join(t.TempDir(), "nope.mp4"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUpload_APIErrorIsWrapped(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "AccessDenied", Message: "bucket policy denies write"}
	u := newTestUploader(&fakePutter{err: apiErr}, Config{Bucket: "media"})

	_, err := u.Upload(context.Background(), "", domain.AssetTrailer, writeTempFile(t, "promo.mp4", "vid"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket policy denies write")
	var got smithy.APIError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, "AccessDenied", got.ErrorCode())
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"public base", Config{Bucket: "b", PublicBaseURL: "https://cdn.test"}, "https://cdn.test/k.png"},
		{"custom endpoint", Config{Bucket: "b", Endpoint: "http://localhost:9000/"}, "http://localhost:9000/b/k.png"},
		{"aws default", Config{Bucket: "b", Region: "eu-west-1"}, "https://s3.eu-west-1.amazonaws.com/b/k.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewUploader(nil, tt.cfg, zerolog.Nop()).PublicURL("k.png"))
		})
	}
}

func TestNewS3Client(t *testing.T) {
	client, err := NewS3Client(context.Background(), Config{Endpoint: "http://localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
