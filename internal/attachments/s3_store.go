package attachments

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/logging"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/metrics"
)

const cacheControl = "max-age=31536000"

// ObjectAPI is the subset of *s3.Client used by S3Store.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// BaseURL overrides the public https://{bucket}.s3.{region}.amazonaws.com endpoint.
	BaseURL string
	// Endpoint points the client at an S3-compatible server (path-style addressing).
	Endpoint string
}

func (c S3Config) Configured() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

func (c S3Config) publicBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
}

// S3Store keeps images in an S3 bucket. Without credentials it is disabled:
// Upload fails with ErrNotConfigured and Delete reports false, and neither
// touches the network.
type S3Store struct {
	client   ObjectAPI
	bucket   string
	baseURL  string
	pipeline Pipeline
}

// NewS3Store builds a client from static credentials. Missing credentials
// yield a disabled store, not an error.
func NewS3Store(ctx context.Context, cfg S3Config, p Pipeline) (*S3Store, error) {
	if !cfg.Configured() {
		return NewS3StoreWithClient(nil, cfg, p), nil
	}

	awsConfig, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(cfg.Region),
		awscfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3StoreWithClient(client, cfg, p), nil
}

// NewS3StoreWithClient wires an existing client. A nil client gives a
// disabled store.
func NewS3StoreWithClient(client ObjectAPI, cfg S3Config, p Pipeline) *S3Store {
	return &S3Store{
		client:   client,
		bucket:   cfg.Bucket,
		baseURL:  cfg.publicBaseURL(),
		pipeline: p,
	}
}

func (s *S3Store) Name() string { return "s3" }

func (s *S3Store) Enabled() bool { return s.client != nil }

func (s *S3Store) Upload(ctx context.Context, u Upload) (obj *StoredObject, err error) {
	defer func() { observeUpload(s.Name(), err) }()

	if s.client == nil {
		return nil, fmt.Errorf("%w: set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY", ErrNotConfigured)
	}

	p, err := s.pipeline.prepare(u)
	if err != nil {
		return nil, err
	}

	filename := u.Filename
	if filename == "" {
		filename = "unknown"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(p.key),
		Body:         bytes.NewReader(p.body),
		ContentType:  aws.String(OutputContentType),
		CacheControl: aws.String(cacheControl),
		Metadata: map[string]string{
			"original_filename": filename,
			"project_id":        ownerScope(u.OwnerID),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: put object %s: %w", ErrBackend, p.key, err)
	}

	logging.FromContext(ctx).Info().
		Str("backend", s.Name()).
		Str("bucket", s.bucket).
		Str("key", p.key).
		Int("bytes", len(p.body)).
		Msg("image stored")

	return &StoredObject{Key: p.key, URL: s.baseURL + "/" + p.key}, nil
}

func (s *S3Store) Delete(ctx context.Context, url string) (removed bool) {
	defer func() { metrics.RecordImageDelete(s.Name(), removed) }()

	log := logging.FromContext(ctx)
	if s.client == nil {
		log.Warn().Str("url", url).Msg("s3 not configured, cannot delete image")
		return false
	}

	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return false
	}

	// DeleteObject succeeds for missing keys, so probe first.
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if !isNotFound(err) {
			log.Warn().Err(err).Str("key", key).Msg("s3 head object failed")
		}
		return false
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("s3 delete object failed")
		return false
	}
	return true
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
