package gcp

import (
	"errors"
	"testing"
)

func TestResolveObjectStorageConfig(t *testing.T) {
	cases := []struct {
		name         string
		mode         string
		emulator     string
		wantMode     ObjectStorageMode
		wantInferred bool
		wantCode     ObjectStorageConfigErrorCode
	}{
		{name: "default gcs", wantMode: ObjectStorageModeGCS},
		{name: "explicit gcs ignores emulator", mode: "gcs", emulator: "http://fake-gcs:4443", wantMode: ObjectStorageModeGCS},
		{name: "explicit emulator", mode: "GCS_EMULATOR", emulator: "http://fake-gcs:4443/", wantMode: ObjectStorageModeGCSEmulator},
		{name: "inferred emulator", emulator: "http://fake-gcs:4443", wantMode: ObjectStorageModeGCSEmulator, wantInferred: true},
		{name: "invalid mode", mode: "s4", wantCode: ObjectStorageConfigErrorInvalidMode},
		{name: "missing emulator host", mode: "gcs_emulator", wantCode: ObjectStorageConfigErrorMissingEmulatorHost},
		{name: "invalid emulator host", mode: "gcs_emulator", emulator: "fake-gcs:4443", wantCode: ObjectStorageConfigErrorInvalidEmulatorHost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := ResolveObjectStorageConfig(tc.mode, tc.emulator)
			if tc.wantCode != "" {
				var cfgErr *ObjectStorageConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ObjectStorageConfigError, got %v", err)
				}
				if cfgErr.Code != tc.wantCode {
					t.Fatalf("code: want=%q got=%q", tc.wantCode, cfgErr.Code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveObjectStorageConfig: %v", err)
			}
			if cfg.Mode != tc.wantMode {
				t.Fatalf("mode: want=%q got=%q", tc.wantMode, cfg.Mode)
			}
			if cfg.Inferred != tc.wantInferred {
				t.Fatalf("inferred: want=%v got=%v", tc.wantInferred, cfg.Inferred)
			}
		})
	}
}

func TestPublicURL(t *testing.T) {
	cases := []struct {
		name   string
		bucket *Bucket
		want   string
	}{
		{
			name:   "gcs default",
			bucket: &Bucket{name: "img-bucket", storageMode: ObjectStorageModeGCS},
			want:   "https://storage.googleapis.com/img-bucket/gifs/abc.gif",
		},
		{
			name:   "cdn",
			bucket: &Bucket{name: "img-bucket", cdnDomain: "cdn.example.com"},
			want:   "https://cdn.example.com/gifs/abc.gif",
		},
		{
			name:   "emulator",
			bucket: &Bucket{name: "img-bucket", storageMode: ObjectStorageModeGCSEmulator, emulatorHost: "http://fake-gcs:4443"},
			want:   "http://fake-gcs:4443/storage/v1/b/img-bucket/o/gifs%2Fabc.gif?alt=media",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.bucket.PublicURL("/gifs/abc.gif"); got != tc.want {
				t.Fatalf("PublicURL: want=%q got=%q", tc.want, got)
			}
		})
	}
}

func TestCredentialOptions(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	if opts := credentialOptions(""); len(opts) != 0 {
		t.Fatalf("empty creds: want ADC got %d options", len(opts))
	}
	if opts := credentialOptions(`{"type":"service_account"}`); len(opts) != 1 {
		t.Fatalf("inline json: want 1 option got %d", len(opts))
	}
	if opts := credentialOptions("/etc/gcp/key.json"); len(opts) != 1 {
		t.Fatalf("file path: want 1 option got %d", len(opts))
	}
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", `{"type":"service_account"}`)
	if opts := credentialOptions(""); len(opts) != 1 {
		t.Fatalf("env fallback: want 1 option got %d", len(opts))
	}
}
