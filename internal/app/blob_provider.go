package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yungbote/profile-backend/internal/platform/gcp"
	"github.com/yungbote/profile-backend/internal/platform/logger"
	"github.com/yungbote/profile-backend/internal/platform/s3"
	"github.com/yungbote/profile-backend/internal/services"
)

type BlobBootstrapErrorCode string

const (
	BlobBootstrapErrorInvalidDriver       BlobBootstrapErrorCode = "invalid_driver"
	BlobBootstrapErrorInvalidMode         BlobBootstrapErrorCode = "invalid_mode"
	BlobBootstrapErrorMissingEmulatorHost BlobBootstrapErrorCode = "missing_emulator_host"
	BlobBootstrapErrorInvalidEmulatorHost BlobBootstrapErrorCode = "invalid_emulator_host"
	BlobBootstrapErrorConnectFailed       BlobBootstrapErrorCode = "connect_failed"
)

type BlobBootstrapError struct {
	Code   BlobBootstrapErrorCode
	Driver string
	Cause  error
}

func (e *BlobBootstrapError) Error() string {
	if e == nil {
		return "blob store bootstrap failed"
	}
	return fmt.Sprintf("blob store bootstrap failed (code=%s driver=%q): %v", e.Code, e.Driver, e.Cause)
}

func (e *BlobBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// blob constructors are variables so tests can stub the network.
var (
	newS3Store = func(ctx context.Context, log *logger.Logger, cfg s3.Config) (services.BlobStore, error) {
		return s3.New(ctx, log, cfg)
	}
	newGCSBucket = func(ctx context.Context, log *logger.Logger, cfg gcp.BucketConfig) (services.BlobStore, error) {
		return gcp.NewBucket(ctx, log, cfg)
	}
)

// resolveBlobStore builds the object store selected by BLOB_DRIVER.
func resolveBlobStore(ctx context.Context, log *logger.Logger, cfg Config) (services.BlobStore, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.BlobDriver))
	log.Info("Selecting blob store", "driver", driver)

	var (
		store services.BlobStore
		err   error
	)
	switch driver {
	case "s3":
		store, err = newS3Store(ctx, log, s3.Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Endpoint:      cfg.S3Endpoint,
			PathStyle:     cfg.S3PathStyle,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	case "gcs":
		storageCfg, cfgErr := gcp.ResolveObjectStorageConfig(cfg.ObjectStorageMode, cfg.StorageEmulator)
		if cfgErr != nil {
			err = cfgErr
			break
		}
		store, err = newGCSBucket(ctx, log, gcp.BucketConfig{
			Bucket:      cfg.GCSBucket,
			CDNDomain:   cfg.GCSCDNDomain,
			Storage:     storageCfg,
			Credentials: cfg.GCSCredentials,
		})
	default:
		err = &BlobBootstrapError{
			Code:   BlobBootstrapErrorInvalidDriver,
			Driver: driver,
			Cause:  fmt.Errorf("unsupported blob driver %q", driver),
		}
	}
	if err != nil {
		classified := classifyBlobBootstrapError(driver, err)
		log.Error("Blob store bootstrap failed", "driver", driver, "error_code", blobBootstrapErrorCode(classified), "error", classified)
		return nil, classified
	}
	return store, nil
}

func classifyBlobBootstrapError(driver string, err error) error {
	var bootstrapErr *BlobBootstrapError
	if errors.As(err, &bootstrapErr) {
		return err
	}
	code := BlobBootstrapErrorConnectFailed
	var cfgErr *gcp.ObjectStorageConfigError
	if errors.As(err, &cfgErr) {
		switch cfgErr.Code {
		case gcp.ObjectStorageConfigErrorInvalidMode:
			code = BlobBootstrapErrorInvalidMode
		case gcp.ObjectStorageConfigErrorMissingEmulatorHost:
			code = BlobBootstrapErrorMissingEmulatorHost
		case gcp.ObjectStorageConfigErrorInvalidEmulatorHost:
			code = BlobBootstrapErrorInvalidEmulatorHost
		}
	}
	return &BlobBootstrapError{Code: code, Driver: driver, Cause: err}
}

func blobBootstrapErrorCode(err error) BlobBootstrapErrorCode {
	var bootstrapErr *BlobBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return BlobBootstrapErrorConnectFailed
}

func closeBlobStore(store services.BlobStore) {
	if c, ok := store.(io.Closer); ok {
		_ = c.Close()
	}
}
