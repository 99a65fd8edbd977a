package s3

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/store"
)

// S3Backend uses the AWS SDK and works against AWS S3 as well as compatible services
// when an endpoint is given.
type S3Backend struct {
	mu sync.RWMutex

	client     *s3.Client
	bucketName string
}

func NewS3Backend(ctx context.Context, endpoint, region, bucketName, accessKey, secretKey string, useSsl bool) (*S3Backend, error) {
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(endpoint, useSsl))
			o.UsePathStyle = true
		}
	})

	return &S3Backend{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func endpointURL(endpoint string, useSsl bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSsl {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// Returns the identifier name defined for this backend
func (*S3Backend) Name() string {
	return "s3"
}

// Open verifies that the bucket is reachable with the configured credentials.
func (sb *S3Backend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(sb.bucketName),
	})
	if err != nil {
		if code(err) == "NotFound" || code(err) == "NoSuchBucket" {
			return fmt.Errorf("bucket '%s' does not exist: %w", sb.bucketName, data.ErrConfigMissing)
		}
		return classify(err, sb.bucketName)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *S3Backend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (sb *S3Backend) GetCapabilities() *store.BackendCapabilities {
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
