package minio

import (
	"context"
	"fmt"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/store"
)

// MinioBackend talks to any S3 compatible service through minio-go.
type MinioBackend struct {
	mu sync.RWMutex

	client     *minio.Client
	bucketName string
}

func NewMinioBackend(endpoint, region, bucketName, accessKey, secretKey string, useSsl bool) (*MinioBackend, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for '%s': %w", endpoint, err)
	}

	return &MinioBackend{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// Returns the identifier name defined for this backend
func (*MinioBackend) Name() string {
	return "minio"
}

// Open verifies that the bucket is reachable with the configured credentials.
func (mb *MinioBackend) Open(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	exists, err := mb.client.BucketExists(ctx, mb.bucketName)
	if err != nil {
		return classify(err, mb.bucketName)
	}
	if !exists {
		return fmt.Errorf("bucket '%s' does not exist: %w", mb.bucketName, data.ErrConfigMissing)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (mb *MinioBackend) Close(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (mb *MinioBackend) GetCapabilities() *store.BackendCapabilities {
	return &store.BackendCapabilities{
		Capabilities: []store.BackendCapability{
			store.CapabilityList,
			store.CapabilityServerCopy,
			store.CapabilityContentType,
			store.CapabilityModifyTime,
		},
		MaxKeys: store.DefaultMaxKeys,
	}
}
