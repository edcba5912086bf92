// Package signer pre-signs notification image paths against S3 using
// minio-go, the same client the pack uses for presigned-GET URLs
// (condotrack's storage service), standing in for the original's
// aws_sdk_s3 presigning.
package signer

import (
	"context"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/goil-app/notification-read-service/internal/pkg/logger"
	pkgerrors "github.com/goil-app/notification-read-service/pkg/errors"
)

// legacyPrefixes maps old image path prefixes to their canonical form.
var legacyPrefixes = []struct {
	from string
	to   string
}{
	{"notification/images/", "notifications/images/"},
	{"notification/image/", "notifications/images/"},
	{"notifications/image/", "notifications/images/"},
}

// Normalize rewrites a legacy image path prefix to its canonical form.
// http(s) URLs are returned unchanged.
func Normalize(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	for _, p := range legacyPrefixes {
		if strings.HasPrefix(path, p.from) {
			return p.to + strings.TrimPrefix(path, p.from)
		}
	}
	return path
}

// Signer pre-signs object paths in the public bucket.
type Signer struct {
	client    *minio.Client
	bucket    string
	expiresIn time.Duration
}

func New(endpoint, accessKey, secretKey, bucket string, useSSL bool, expiresIn time.Duration) (*Signer, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &Signer{client: client, bucket: bucket, expiresIn: expiresIn}, nil
}

// Sign returns a presigned GET URL for path. If the path is already an
// absolute http(s) URL it is returned as-is. On any signing failure the
// original (normalized) path is substituted rather than failing the
// response.
func (s *Signer) Sign(ctx context.Context, path string) string {
	normalized := Normalize(path)
	if strings.HasPrefix(normalized, "http://") || strings.HasPrefix(normalized, "https://") {
		return normalized
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, normalized, s.expiresIn, nil)
	if err != nil {
		logger.Warn("signer: [%s] failed to presign %q: %v", pkgerrors.KindSigner, normalized, err)
		return normalized
	}
	return u.String()
}

// SignAll signs every path in order, preserving cardinality.
func (s *Signer) SignAll(ctx context.Context, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = s.Sign(ctx, p)
	}
	return out
}
