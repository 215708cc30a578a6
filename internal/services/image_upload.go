package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yungbote/profile-backend/internal/observability"
	apperrors "github.com/yungbote/profile-backend/internal/pkg/errors"
	"github.com/yungbote/profile-backend/internal/platform/logger"
)

const (
	imageKeyLength   = 24
	imageKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	imageKeyPrefix   = "gifs/"
	imageContentType = "image/gif"
)

// BlobStore is an object store that can publish an object to anyone.
type BlobStore interface {
	PutPublic(ctx context.Context, key string, body []byte, contentType string) error
	PublicURL(key string) string
}

type ImageUploader interface {
	// Store decodes a base64 image, uploads it under a fresh random key and
	// returns its public URL.
	Store(ctx context.Context, payload string) (string, error)
}

type imageUploader struct {
	log     *logger.Logger
	blobs   BlobStore
	metrics *observability.Metrics
	timeout time.Duration
	random  io.Reader
}

func NewImageUploader(log *logger.Logger, blobs BlobStore, metrics *observability.Metrics, timeout time.Duration) ImageUploader {
	return &imageUploader{
		log:     log.With("service", "ImageUploader"),
		blobs:   blobs,
		metrics: metrics,
		timeout: timeout,
		random:  rand.Reader,
	}
}

func (u *imageUploader) Store(ctx context.Context, payload string) (string, error) {
	raw, err := decodeImage(payload)
	if err != nil {
		u.metrics.ObserveUpload("bad_input")
		return "", err
	}
	key, err := randomImageKey(u.random)
	if err != nil {
		return "", fmt.Errorf("generate image key: %w", err)
	}

	putCtx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	if err := u.blobs.PutPublic(putCtx, key, raw, imageContentType); err != nil {
		u.metrics.ObserveUpload("error")
		u.log.Warn("Image upload failed", "key", key, "bytes", len(raw), "error", err)
		return "", apperrors.Transient("image upload failed", err)
	}
	u.metrics.ObserveUpload("ok")
	return u.blobs.PublicURL(key), nil
}

// decodeImage accepts standard base64 with or without padding, optionally
// behind a data: URL prefix.
func decodeImage(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			payload = payload[i+1:]
		}
	}
	if payload == "" {
		return nil, apperrors.BadInput("image payload is empty", nil)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil {
		return nil, apperrors.BadInput("image payload is not valid base64", err)
	}
	return raw, nil
}

func randomImageKey(r io.Reader) (string, error) {
	const limit = 256 - (256 % len(imageKeyAlphabet))
	out := make([]byte, 0, imageKeyLength)
	buf := make([]byte, imageKeyLength)
	for len(out) < imageKeyLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			// Reject the tail of the byte range so each symbol is equally likely.
			if int(b) >= limit {
				continue
			}
			out = append(out, imageKeyAlphabet[int(b)%len(imageKeyAlphabet)])
			if len(out) == imageKeyLength {
				break
			}
		}
	}
	return imageKeyPrefix + string(out) + ".gif", nil
}
