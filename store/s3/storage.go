package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/data/errors"
	"github.com/mwantia/ossfm/store"
)

// List maps directly onto ListObjectsV2. The continuation token is the one returned
// by the service.
func (sb *S3Backend) List(ctx context.Context, query *store.ListQuery) (*data.ListResult, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(sb.bucketName),
		Prefix:  aws.String(query.Prefix),
		MaxKeys: aws.Int32(int32(query.Limit())),
	}
	if query.Delimiter != "" {
		input.Delimiter = aws.String(query.Delimiter)
	}
	if query.ContinuationToken != "" {
		input.ContinuationToken = aws.String(query.ContinuationToken)
	}

	output, err := sb.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to list '%s': %w", query.Prefix, classify(err, query.Prefix))
	}

	result := &data.ListResult{
		Objects:        make([]data.ObjectSummary, 0, len(output.Contents)),
		CommonPrefixes: make([]string, 0, len(output.CommonPrefixes)),
		Truncated:      aws.ToBool(output.IsTruncated),
		NextToken:      aws.ToString(output.NextContinuationToken),
	}

	for _, object := range output.Contents {
		result.Objects = append(result.Objects, data.ObjectSummary{
			Key:          aws.ToString(object.Key),
			Size:         aws.ToInt64(object.Size),
			LastModified: aws.ToTime(object.LastModified),
			ETag:         aws.ToString(object.ETag),
		})
	}
	for _, prefix := range output.CommonPrefixes {
		result.CommonPrefixes = append(result.CommonPrefixes, aws.ToString(prefix.Prefix))
	}

	return result, nil
}

func (sb *S3Backend) Get(ctx context.Context, key string) ([]byte, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	output, err := sb.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(sb.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classify(err, key)
	}
	defer output.Body.Close()

	content, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", key, classify(err, key))
	}
	return content, nil
}

func (sb *S3Backend) Put(ctx context.Context, key string, content []byte) error {
	if key == "" {
		return errors.Invalid("empty key for", "put")
	}

	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(sb.bucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String(string(data.ContentTypeOf(key))),
	})
	if err != nil {
		return fmt.Errorf("failed to put '%s': %w", key, classify(err, key))
	}
	return nil
}

func (sb *S3Backend) Copy(ctx context.Context, destinationKey, sourceKey string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(sb.bucketName),
		Key:        aws.String(destinationKey),
		CopySource: aws.String(url.PathEscape(sb.bucketName + "/" + sourceKey)),
	})
	if err != nil {
		return fmt.Errorf("failed to copy to '%s': %w", destinationKey, classify(err, sourceKey))
	}
	return nil
}

func (sb *S3Backend) Delete(ctx context.Context, key string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(sb.bucketName),
		Key:    aws.String(key),
	})
	if err != nil && code(err) != "NoSuchKey" {
		return fmt.Errorf("failed to delete '%s': %w", key, classify(err, key))
	}
	return nil
}
