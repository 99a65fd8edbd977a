package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/data/errors"
	"github.com/mwantia/ossfm/store"
)

// List reads a single page. minio-go pages transparently, so the listing is stopped
// after one more item than requested to detect truncation.
func (mb *MinioBackend) List(ctx context.Context, query *store.ListQuery) (*data.ListResult, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	limit := query.Limit()
	objectsCh := mb.client.ListObjects(listCtx, mb.bucketName, minio.ListObjectsOptions{
		Prefix:     query.Prefix,
		Recursive:  query.Delimiter == "",
		MaxKeys:    limit,
		StartAfter: query.ContinuationToken,
	})

	result := &data.ListResult{
		Objects:        make([]data.ObjectSummary, 0),
		CommonPrefixes: make([]string, 0),
	}

	last := ""
	count := 0
	for object := range objectsCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list '%s': %w", query.Prefix, classify(object.Err, query.Prefix))
		}
		// StartAfter still reports the common prefix the token points at
		if query.ContinuationToken != "" && object.Key <= query.ContinuationToken {
			continue
		}

		if count == limit {
			result.Truncated = true
			result.NextToken = last
			break
		}

		if query.Delimiter != "" && object.Key != query.Prefix && strings.HasSuffix(object.Key, query.Delimiter) {
			result.CommonPrefixes = append(result.CommonPrefixes, object.Key)
		} else {
			result.Objects = append(result.Objects, data.ObjectSummary{
				Key:          object.Key,
				Size:         object.Size,
				LastModified: object.LastModified,
				ETag:         object.ETag,
			})
		}

		last = object.Key
		count++
	}

	return result, nil
}

func (mb *MinioBackend) Get(ctx context.Context, key string) ([]byte, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	object, err := mb.client.GetObject(ctx, mb.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classify(err, key)
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		return nil, classify(err, key)
	}
	return content, nil
}

func (mb *MinioBackend) Put(ctx context.Context, key string, content []byte) error {
	if key == "" {
		return errors.Invalid("empty key for", "put")
	}

	mb.mu.Lock()
	defer mb.mu.Unlock()

	_, err := mb.client.PutObject(ctx, mb.bucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: string(data.ContentTypeOf(key)),
	})
	if err != nil {
		return fmt.Errorf("failed to put '%s': %w", key, classify(err, key))
	}
	return nil
}

func (mb *MinioBackend) Copy(ctx context.Context, destinationKey, sourceKey string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	_, err := mb.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: mb.bucketName, Object: destinationKey},
		minio.CopySrcOptions{Bucket: mb.bucketName, Object: sourceKey},
	)
	if err != nil {
		return fmt.Errorf("failed to copy to '%s': %w", destinationKey, classify(err, sourceKey))
	}
	return nil
}

func (mb *MinioBackend) Delete(ctx context.Context, key string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if err := mb.client.RemoveObject(ctx, mb.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return nil
		}
		return fmt.Errorf("failed to delete '%s': %w", key, classify(err, key))
	}
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
