package gcp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/profile-backend/internal/platform/logger"
)

type BucketConfig struct {
	Bucket    string
	CDNDomain string
	Storage   ObjectStorageConfig
	// Credentials is inline service-account JSON or a key file path.
	Credentials string
}

// Bucket writes publicly readable objects to one GCS bucket.
type Bucket struct {
	log           *logger.Logger
	storageClient *storage.Client
	name          string
	cdnDomain     string
	storageMode   ObjectStorageMode
	emulatorHost  string
}

func NewBucket(ctx context.Context, log *logger.Logger, cfg BucketConfig) (*Bucket, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET")
	}
	serviceLog := log.With("service", "GCSBlobStore")

	stClient, err := newStorageClientForMode(ctx, cfg.Storage, cfg.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog.Info(
		"Object storage initialized",
		"mode", cfg.Storage.Mode,
		"mode_source", cfg.Storage.ModeSource(),
		"emulator_host", cfg.Storage.EmulatorHost,
		"bucket", cfg.Bucket,
		"cdn_domain", cfg.CDNDomain,
	)

	return &Bucket{
		log:           serviceLog,
		storageClient: stClient,
		name:          cfg.Bucket,
		cdnDomain:     strings.TrimSpace(cfg.CDNDomain),
		storageMode:   cfg.Storage.Mode,
		emulatorHost:  cfg.Storage.EmulatorHost,
	}, nil
}

func newStorageClientForMode(ctx context.Context, storageCfg ObjectStorageConfig, creds string) (*storage.Client, error) {
	switch storageCfg.Mode {
	case ObjectStorageModeGCS:
		opts := credentialOptions(creds)
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
		return storage.NewClient(ctx, opts...)
	case ObjectStorageModeGCSEmulator:
		_ = os.Setenv("STORAGE_EMULATOR_HOST", storageCfg.EmulatorHost)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	default:
		return nil, &ObjectStorageConfigError{
			Code: ObjectStorageConfigErrorInvalidMode,
			Mode: string(storageCfg.Mode),
		}
	}
}

// PutPublic uploads body under key readable by anyone.
func (b *Bucket) PutPublic(ctx context.Context, key string, body []byte, contentType string) error {
	w := b.storageClient.Bucket(b.name).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if !b.isEmulatorMode() {
		w.PredefinedACL = "publicRead"
	}
	if _, err := io.Copy(w, bytes.NewReader(body)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (b *Bucket) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if b.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", b.cdnDomain, key)
	}
	if b.isEmulatorMode() {
		return fmt.Sprintf(
			"%s/storage/v1/b/%s/o/%s?alt=media",
			b.emulatorHost,
			url.PathEscape(b.name),
			url.PathEscape(key),
		)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.name, key)
}

func (b *Bucket) Close() error {
	if b == nil || b.storageClient == nil {
		return nil
	}
	return b.storageClient.Close()
}

func (b *Bucket) isEmulatorMode() bool {
	return b != nil && b.storageMode == ObjectStorageModeGCSEmulator && b.emulatorHost != ""
}
