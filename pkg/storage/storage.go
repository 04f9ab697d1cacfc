package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the bucket holding templates (required).
	Bucket string `envconfig:"TEMPLATE_S3_BUCKET"`

	// Prefix is prepended to every object key.
	Prefix string `envconfig:"TEMPLATE_S3_PREFIX"`

	// Region is the AWS region (default: us-east-1).
	Region string `envconfig:"TEMPLATE_S3_REGION"`

	// Endpoint is a custom endpoint URL (MinIO and other S3-compatible services).
	Endpoint string `envconfig:"TEMPLATE_S3_ENDPOINT"`

	// AccessKey and SecretKey are optional static credentials.
	AccessKey string `envconfig:"TEMPLATE_S3_ACCESS_KEY"`
	SecretKey string `envconfig:"TEMPLATE_S3_SECRET_KEY"`

	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool `envconfig:"TEMPLATE_S3_PATH_STYLE"`
}

func (c *Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return fmt.Errorf("%w: access key and secret key must be set together", ErrInvalidConfig)
	}
	return nil
}

// ObjectGetter is the subset of the S3 client used by S3Storage.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Storage reads objects from a single bucket.
type S3Storage struct {
	client ObjectGetter
	cfg    Config
}

// New creates an S3Storage. Credentials are resolved lazily by the SDK;
// no request is made until Open.
func New(ctx context.Context, cfg Config) (*S3Storage, error) {
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return NewWithClient(client, cfg)
}

// NewWithClient creates an S3Storage around an existing client.
func NewWithClient(client ObjectGetter, cfg Config) (*S3Storage, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &S3Storage{client: client, cfg: cfg}, nil
}

// Open retrieves the object stored under name (joined with Config.Prefix).
// The caller is responsible for closing the returned reader.
func (s *S3Storage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrReadFailed)
	}
	return output.Body, nil
}

// key joins the configured prefix and name into an object key.
func (s *S3Storage) key(name string) string {
	name = strings.TrimPrefix(name, "/")
	if s.cfg.Prefix == "" {
		return name
	}
	return path.Join(strings.Trim(s.cfg.Prefix, "/"), name)
}

// ParseURL splits "s3://bucket/key" into bucket and key.
func ParseURL(raw string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(raw, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
