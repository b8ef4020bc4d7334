package objstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"airwatch/internal/platform/config"
	perr "airwatch/internal/platform/errors"
	"airwatch/internal/platform/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config is the S3 connection config
type Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// FromEnv reads S3_* keys
func FromEnv(c config.Conf) Config {
	return Config{
		Region:          c.MayString("REGION", "ap-south-1"),
		Bucket:          c.MayString("BUCKET", "radio-playback-files"),
		Endpoint:        strings.TrimRight(c.MayString("ENDPOINT", ""), "/"),
		AccessKeyID:     c.MayString("ACCESS_KEY_ID", ""),
		SecretAccessKey: c.MayString("SECRET_ACCESS_KEY", ""),
		PathStyle:       c.MayBool("PATH_STYLE", false),
	}
}

type uploader interface {
	Upload(ctx context.Context, in *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type deleter interface {
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 is a Store backed by an S3 bucket
type S3 struct {
	cfg Config
	up  uploader
	del deleter
}

// NewS3 loads AWS config and builds an S3 store
// static credentials are used when both keys are set, otherwise the default chain applies
func NewS3(ctx context.Context, cfg Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "objstore: bucket is required")
	}
	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	ac, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("objstore: load aws config: %w", err)
	}
	client := s3.NewFromConfig(ac, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})
	logger.Named("objstore").Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Bool("custom_endpoint", cfg.Endpoint != "").
		Msg("s3 store ready")
	return &S3{cfg: cfg, up: manager.NewUploader(client), del: client}, nil
}

// Put implements Store
func (s *S3) Put(ctx context.Context, key string, body []byte, contentType string, meta map[string]string) (string, error) {
	_, err := s.up.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata:    meta,
	})
	if err != nil {
		return "", perr.Upstreamf(err, "failed to upload file to storage")
	}
	return s.URL(key), nil
}

// Delete implements Store
func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.del.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return perr.Upstreamf(err, "failed to delete file from storage")
	}
	return nil
}

// URL implements Store
// virtual hosted style on AWS, path style under a custom endpoint
func (s *S3) URL(key string) string {
	p := (&url.URL{Path: key}).EscapedPath()
	if s.cfg.Endpoint != "" {
		return s.cfg.Endpoint + "/" + s.cfg.Bucket + "/" + p
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, p)
}
