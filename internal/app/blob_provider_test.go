package app

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/profile-backend/internal/platform/gcp"
	"github.com/yungbote/profile-backend/internal/platform/logger"
	"github.com/yungbote/profile-backend/internal/platform/s3"
	"github.com/yungbote/profile-backend/internal/services"
)

type nopBlobs struct{}

func (nopBlobs) PutPublic(context.Context, string, []byte, string) error { return nil }
func (nopBlobs) PublicURL(key string) string                             { return key }

func stubBlobConstructors(t *testing.T, s3Err, gcsErr error) (*s3.Config, *gcp.BucketConfig) {
	t.Helper()
	origS3, origGCS := newS3Store, newGCSBucket
	t.Cleanup(func() { newS3Store, newGCSBucket = origS3, origGCS })

	var gotS3 s3.Config
	var gotGCS gcp.BucketConfig
	newS3Store = func(_ context.Context, _ *logger.Logger, cfg s3.Config) (services.BlobStore, error) {
		gotS3 = cfg
		if s3Err != nil {
			return nil, s3Err
		}
		return nopBlobs{}, nil
	}
	newGCSBucket = func(_ context.Context, _ *logger.Logger, cfg gcp.BucketConfig) (services.BlobStore, error) {
		gotGCS = cfg
		if gcsErr != nil {
			return nil, gcsErr
		}
		return nopBlobs{}, nil
	}
	return &gotS3, &gotGCS
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestResolveBlobStoreS3(t *testing.T) {
	gotS3, _ := stubBlobConstructors(t, nil, nil)
	cfg := Config{BlobDriver: "S3", S3Bucket: "imgs", S3Region: "eu-west-1", S3PathStyle: true}

	if _, err := resolveBlobStore(context.Background(), testLogger(t), cfg); err != nil {
		t.Fatalf("resolveBlobStore: %v", err)
	}
	if gotS3.Bucket != "imgs" || gotS3.Region != "eu-west-1" || !gotS3.PathStyle {
		t.Fatalf("s3 config: %+v", *gotS3)
	}
}

func TestResolveBlobStoreGCSEmulator(t *testing.T) {
	_, gotGCS := stubBlobConstructors(t, nil, nil)
	cfg := Config{BlobDriver: "gcs", GCSBucket: "imgs", StorageEmulator: "http://fake-gcs:4443"}

	if _, err := resolveBlobStore(context.Background(), testLogger(t), cfg); err != nil {
		t.Fatalf("resolveBlobStore: %v", err)
	}
	if !gotGCS.Storage.IsEmulatorMode() || gotGCS.Bucket != "imgs" {
		t.Fatalf("gcs config: %+v", *gotGCS)
	}
}

func TestResolveBlobStoreErrors(t *testing.T) {
	cases := []struct {
		name  string
		cfg   Config
		s3Err error
		want  BlobBootstrapErrorCode
	}{
		{name: "invalid_driver", cfg: Config{BlobDriver: "ftp"}, want: BlobBootstrapErrorInvalidDriver},
		{name: "invalid_mode", cfg: Config{BlobDriver: "gcs", ObjectStorageMode: "nope"}, want: BlobBootstrapErrorInvalidMode},
		{name: "missing_emulator", cfg: Config{BlobDriver: "gcs", ObjectStorageMode: "gcs_emulator"}, want: BlobBootstrapErrorMissingEmulatorHost},
		{name: "invalid_emulator", cfg: Config{BlobDriver: "gcs", ObjectStorageMode: "gcs_emulator", StorageEmulator: "fake:1"}, want: BlobBootstrapErrorInvalidEmulatorHost},
		{name: "connect_failed", cfg: Config{BlobDriver: "s3", S3Bucket: "imgs"}, s3Err: errors.New("no credentials"), want: BlobBootstrapErrorConnectFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stubBlobConstructors(t, tc.s3Err, nil)
			_, err := resolveBlobStore(context.Background(), testLogger(t), tc.cfg)
			var got *BlobBootstrapError
			if !errors.As(err, &got) {
				t.Fatalf("expected BlobBootstrapError, got %T %v", err, err)
			}
			if got.Code != tc.want {
				t.Fatalf("code: want=%q got=%q", tc.want, got.Code)
			}
		})
	}
}
