package objstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"airwatch/internal/platform/config"
	perr "airwatch/internal/platform/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted []string
	err     error
}

func (f *fakeS3) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &manager.UploadOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_PutDelete(t *testing.T) {
	f := &fakeS3{}
	s := &S3{cfg: Config{Region: "ap-south-1", Bucket: "radio-playback-files"}, up: f, del: f}

	u, err := s.Put(context.Background(), "asrun-files/a-1.json", []byte(`[]`), "application/json", map[string]string{"originalName": "a.csv"})
	require.NoError(t, err)
	assert.Equal(t, "https://radio-playback-files.s3.ap-south-1.amazonaws.com/asrun-files/a-1.json", u)
	assert.Equal(t, "radio-playback-files", aws.ToString(f.put.Bucket))
	assert.Equal(t, "application/json", aws.ToString(f.put.ContentType))
	assert.Equal(t, "a.csv", f.put.Metadata["originalName"])
	assert.Equal(t, `[]`, string(f.body))

	require.NoError(t, s.Delete(context.Background(), "asrun-files/a-1.json"))
	assert.Equal(t, []string{"asrun-files/a-1.json"}, f.deleted)
}

func TestS3_ErrorsAreUpstream(t *testing.T) {
	f := &fakeS3{err: errors.New("access denied")}
	s := &S3{cfg: Config{Bucket: "b"}, up: f, del: f}

	_, err := s.Put(context.Background(), "k", nil, "application/json", nil)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUpstream))

	err = s.Delete(context.Background(), "k")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUpstream))
}

func TestS3_URLCustomEndpoint(t *testing.T) {
	s := &S3{cfg: Config{Bucket: "asrun", Endpoint: "http://minio:9000"}}
	assert.Equal(t, "http://minio:9000/asrun/asrun-files/x%20y.json", s.URL("asrun-files/x y.json"))
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), Config{})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
}

func TestFromEnv(t *testing.T) {
	t.Setenv("S3_ENDPOINT", "http://minio:9000/")
	t.Setenv("S3_PATH_STYLE", "true")
	c := FromEnv(config.New().Prefix("S3_"))
	assert.Equal(t, "ap-south-1", c.Region)
	assert.Equal(t, "radio-playback-files", c.Bucket)
	assert.Equal(t, "http://minio:9000", c.Endpoint)
	assert.True(t, c.PathStyle)
}

func TestMemory(t *testing.T) {
	m := NewMemory("https://files.test/")
	u, err := m.Put(context.Background(), "asrun-files/a.json", []byte("[]"), "application/json", map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, "https://files.test/asrun-files/a.json", u)

	o, ok := m.Get("asrun-files/a.json")
	require.True(t, ok)
	assert.Equal(t, "application/json", o.ContentType)
	assert.Equal(t, []string{"asrun-files/a.json"}, m.Keys())

	require.NoError(t, m.Delete(context.Background(), "asrun-files/a.json"))
	require.NoError(t, m.Delete(context.Background(), "asrun-files/a.json"))
	assert.Empty(t, m.Keys())

	m.FailPut = errors.New("down")
	_, err = m.Put(context.Background(), "x", nil, "", nil)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUpstream))
}
