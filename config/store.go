package config

import (
	"strings"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/data/errors"
)

// DefaultTrashPath is used when a store configuration leaves TrashPath empty.
const DefaultTrashPath = "trash/"

// Supported remote store providers.
const (
	ProviderMinio     = "minio"
	ProviderS3        = "s3"
	ProviderConsul    = "consul"
	ProviderEphemeral = "ephemeral"
)

// StoreConfig describes the bucket to manage and the two namespace roots inside it.
type StoreConfig struct {
	Provider        string `json:"provider" mapstructure:"provider"`
	Endpoint        string `json:"endpoint" mapstructure:"endpoint"`
	Region          string `json:"region" mapstructure:"region"`
	Bucket          string `json:"bucket" mapstructure:"bucket"`
	AccessKeyID     string `json:"access_key_id" mapstructure:"access_key_id"`
	AccessKeySecret string `json:"access_key_secret" mapstructure:"access_key_secret"`
	Secure          bool   `json:"secure" mapstructure:"secure"`

	RootPath  string `json:"root_path" mapstructure:"root_path"`
	TrashPath string `json:"trash_path" mapstructure:"trash_path"`
}

// NamespaceConfig holds the normalized live and trash roots.
type NamespaceConfig struct {
	RootPath  string `json:"root_path"`
	TrashPath string `json:"trash_path"`
}

// Namespace returns the normalized roots, applying DefaultTrashPath.
func (c *StoreConfig) Namespace() NamespaceConfig {
	trash := data.NormalizePrefix(c.TrashPath)
	if trash == "" {
		trash = DefaultTrashPath
	}

	return NamespaceConfig{
		RootPath:  data.NormalizePrefix(c.RootPath),
		TrashPath: trash,
	}
}

// Validate reports data.ErrConfigMissing when a field required by the provider is empty.
func (c *StoreConfig) Validate() error {
	if c == nil {
		return errors.ConfigMissing("no store configuration")
	}

	provider := strings.ToLower(strings.TrimSpace(c.Provider))
	switch provider {
	case "", ProviderMinio, ProviderS3:
		if c.Bucket == "" {
			return errors.ConfigMissing("bucket is not set")
		}
		if c.AccessKeyID == "" || c.AccessKeySecret == "" {
			return errors.ConfigMissing("access key is not set")
		}
		if provider != ProviderS3 && c.Endpoint == "" {
			return errors.ConfigMissing("endpoint is not set")
		}
	case ProviderConsul, ProviderEphemeral:
	default:
		return errors.Invalid("unknown store provider", c.Provider)
	}

	ns := c.Namespace()
	if ns.RootPath != "" && strings.HasPrefix(ns.RootPath, ns.TrashPath) {
		return errors.Invalid("root path must not be inside trash path", ns.RootPath)
	}
	return nil
}
