package sink

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dd0wney/cluso-leaknet/pkg/config"
	"github.com/dd0wney/cluso-leaknet/pkg/export"
	"github.com/dd0wney/cluso-leaknet/pkg/logging"
)

// objectPutter is the part of the S3 client the sink uses.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads every artifact and then the manifest to a bucket.
type S3Sink struct {
	client objectPutter
	bucket string
	prefix string
	logger logging.Logger
}

// NewS3 builds a client from cfg. Static credentials are used when given,
// otherwise the default AWS credential chain applies.
func NewS3(ctx context.Context, cfg config.S3Config, logger logging.Logger) (*S3Sink, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newS3Sink(client, cfg.Bucket, cfg.Prefix, logger), nil
}

func newS3Sink(client objectPutter, bucket, prefix string, logger logging.Logger) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger.With(logging.Component("s3")),
	}
}

// Name implements Sink.
func (s *S3Sink) Name() string { return "s3" }

// Close implements Sink.
func (s *S3Sink) Close() error { return nil }

// ObjectKey returns the key an artifact file is stored under.
func (s *S3Sink) ObjectKey(file string) string {
	return path.Join(s.prefix, filepath.ToSlash(file))
}

// Publish uploads the artifacts in manifest order, then the manifest, so a
// reader that finds the manifest finds every file it lists.
func (s *S3Sink) Publish(ctx context.Context, run *Run) error {
	for _, a := range run.Manifest.Artifacts {
		if err := s.put(ctx, filepath.Join(run.Dir, a.File), a.File, a.Checksum); err != nil {
			return err
		}
	}
	return s.put(ctx, filepath.Join(run.Dir, export.ManifestFile), export.ManifestFile, "")
}

func (s *S3Sink) put(ctx context.Context, local, file, checksum string) error {
	f, err := os.Open(local)
	if err != nil {
		return err
	}
	defer f.Close()

	key := s.ObjectKey(file)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(file)),
	}
	if checksum != "" {
		input.Metadata = map[string]string{"blake2b": checksum}
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", s.bucket, key, err)
	}
	s.logger.Debug("artifact uploaded", logging.String("bucket", s.bucket), logging.String("key", key))
	return nil
}

func contentType(file string) string {
	switch {
	case strings.HasSuffix(file, ".csv"):
		return "text/csv; charset=utf-8"
	case strings.HasSuffix(file, ".sz"):
		return "application/x-snappy-framed"
	case strings.HasSuffix(file, ".gexf"):
		return "application/xml"
	case strings.HasSuffix(file, ".yaml"):
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}
