package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
)

// SignedURLTTL is the fixed lifetime of download URLs handed out for staged
// objects, including the ones the promotion copy loop consumes internally.
const SignedURLTTL = 10 * time.Minute

type BucketService interface {
	// Upload writes the object only if it does not already exist. Random
	// tokens in object paths make collisions a programming error, not a
	// runtime event, so an overwrite attempt fails loudly.
	Upload(ctx context.Context, bucket, key string, file io.Reader, contentType string) error
	SignedDownloadURL(bucket, key string, expiry time.Duration) (string, error)
	// Remove deletes the listed keys from one bucket. Missing objects are
	// not an error: the staging cleanup re-runs safely.
	Remove(ctx context.Context, bucket string, keys []string) error
	GetPublicURL(bucket, key string) string
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")
	saPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON")
	if saPath == "" {
		serviceLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set, relying on ambient ADC")
	}
	ctx := context.Background()
	var stClient *storage.Client
	var err error
	if saPath != "" {
		stClient, err = storage.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		stClient, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &bucketService{
		log:           serviceLog,
		storageClient: stClient,
	}, nil
}

func (bs *bucketService) Upload(ctx context.Context, bucket, key string, file io.Reader, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	obj := bs.storageClient.Bucket(bucket).Object(key).If(storage.Conditions{DoesNotExist: true})
	w := obj.NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write object %s/%s: %w", bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (bs *bucketService) SignedDownloadURL(bucket, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = SignedURLTTL
	}
	url, err := bs.storageClient.Bucket(bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiry),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign download URL for %s/%s: %w", bucket, key, err)
	}
	return url, nil
}

func (bs *bucketService) Remove(ctx context.Context, bucket string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(len(keys))*30*time.Second)
	defer cancel()
	for _, key := range keys {
		err := bs.storageClient.Bucket(bucket).Object(key).Delete(ctx)
		if err != nil && err != storage.ErrObjectNotExist {
			return fmt.Errorf("failed to delete object %s/%s: %w", bucket, key, err)
		}
	}
	return nil
}

func (bs *bucketService) GetPublicURL(bucket, key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}
