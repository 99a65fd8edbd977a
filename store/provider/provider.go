// Package provider creates remote stores from a store configuration.
package provider

import (
	"context"
	"strings"

	"github.com/mwantia/ossfm/config"
	"github.com/mwantia/ossfm/data/errors"
	"github.com/mwantia/ossfm/store"
	"github.com/mwantia/ossfm/store/consul"
	"github.com/mwantia/ossfm/store/ephemeral"
	"github.com/mwantia/ossfm/store/minio"
	"github.com/mwantia/ossfm/store/s3"
)

var _ store.Opener = Open

// Open creates the store named by cfg.Provider. The returned store is not opened yet.
func Open(ctx context.Context, cfg *config.StoreConfig) (store.RemoteStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", config.ProviderMinio:
		return minio.NewMinioBackend(cfg.Endpoint, cfg.Region, cfg.Bucket, cfg.AccessKeyID, cfg.AccessKeySecret, cfg.Secure)
	case config.ProviderS3:
		return s3.NewS3Backend(ctx, cfg.Endpoint, cfg.Region, cfg.Bucket, cfg.AccessKeyID, cfg.AccessKeySecret, cfg.Secure)
	case config.ProviderConsul:
		return consul.NewConsulBackend(&consul.ConsulBackendConfig{
			Address:    cfg.Endpoint,
			Token:      cfg.AccessKeySecret,
			Datacenter: cfg.Region,
			Prefix:     cfg.Bucket,
		})
	case config.ProviderEphemeral:
		return ephemeral.NewEphemeralBackend(), nil
	}

	return nil, errors.Invalid("unknown store provider", cfg.Provider)
}
