package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/yungbote/profile-backend/internal/platform/logger"
)

// Store writes public objects to a single S3-compatible bucket (AWS S3 or
// MinIO). Keys map to object keys directly.
type Store struct {
	log        *logger.Logger
	client     *s3.Client
	bucket     string
	region     string
	publicBase string
}

type Config struct {
	Region          string
	Bucket          string
	Endpoint        string // optional; enables a custom endpoint (e.g. MinIO)
	AccessKeyID     string // optional (falls back to default credentials chain)
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
	// PublicBaseURL overrides the URL prefix returned by PublicURL (e.g. a CDN).
	PublicBaseURL string
	// HTTPClient overrides the SDK transport; used by tests.
	HTTPClient aws.HTTPClient
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.HTTPClient != nil {
			o.HTTPClient = cfg.HTTPClient
		}
	})

	publicBase, err := resolvePublicBase(cfg, region)
	if err != nil {
		return nil, err
	}
	storeLog := log.With("service", "S3BlobStore")
	storeLog.Info("S3 blob store initialized",
		"bucket", cfg.Bucket,
		"region", region,
		"endpoint", cfg.Endpoint,
		"public_base_url", publicBase,
	)
	return &Store{
		log:        storeLog,
		client:     client,
		bucket:     cfg.Bucket,
		region:     region,
		publicBase: publicBase,
	}, nil
}

func resolvePublicBase(cfg Config, region string) (string, error) {
	if raw := strings.TrimSpace(cfg.PublicBaseURL); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "", fmt.Errorf("invalid S3_PUBLIC_BASE_URL=%q; expected absolute URL", raw)
		}
		return strings.TrimRight(raw, "/"), nil
	}
	if endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"); endpoint != "" {
		if cfg.PathStyle {
			return endpoint + "/" + cfg.Bucket, nil
		}
		u, err := url.Parse(endpoint)
		if err != nil || u.Host == "" {
			return "", fmt.Errorf("invalid S3_ENDPOINT=%q", cfg.Endpoint)
		}
		return fmt.Sprintf("%s://%s.%s", u.Scheme, cfg.Bucket, u.Host), nil
	}
	if region == "us-east-1" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.Bucket), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region), nil
}

// PutPublic uploads body under key with a public-read ACL.
func (s *Store) PutPublic(ctx context.Context, key string, body []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ACL:           types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 put %q: %w", key, err)
	}
	return nil
}

func (s *Store) PublicURL(key string) string {
	return s.publicBase + "/" + strings.TrimLeft(key, "/")
}
