package consul

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/ossfm/store"
)

// MaxObjectSize is the default Consul KV value limit.
const MaxObjectSize = 512 * 1024

// ConsulBackend keeps objects in the Consul KV store. Every object is a single KV pair
// below Prefix; the last modification time is kept in the pair flags.
type ConsulBackend struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	config *ConsulBackendConfig
}

// ConsulBackendConfig contains configuration options for the Consul backend
type ConsulBackendConfig struct {
	// Address of the Consul agent (default: "127.0.0.1:8500")
	Address string
	// Token for Consul ACL authentication (optional)
	Token string
	// Datacenter to use (optional)
	Datacenter string
	// Prefix for all keys in Consul KV, empty stores keys as they are
	Prefix string
}

func NewConsulBackend(config *ConsulBackendConfig) (*ConsulBackend, error) {
	if config == nil {
		config = &ConsulBackendConfig{}
	}
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	prefix := strings.Trim(config.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	config.Prefix = prefix

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client for '%s': %w", config.Address, err)
	}

	return &ConsulBackend{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend
func (*ConsulBackend) Name() string {
	return "consul"
}

// Open checks that the agent answers with a leader.
func (cb *ConsulBackend) Open(ctx context.Context) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if _, err := cb.client.Status().LeaderWithQueryOptions((&api.QueryOptions{}).WithContext(ctx)); err != nil {
		return classify(err, cb.config.Address)
	}
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend
func (cb *ConsulBackend) Close(ctx context.Context) error {
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend
func (cb *ConsulBackend) GetCapabilities() *store.BackendCapabilities {
	return &store.BackendCapabilities{
		Capabilities: []store.BackendCapability{
			store.CapabilityList,
			store.CapabilityModifyTime,
		},
		MaxObjectSize: MaxObjectSize,
		MaxKeys:       store.DefaultMaxKeys,
	}
}

func (cb *ConsulBackend) buildKey(key string) string {
	return cb.config.Prefix + strings.TrimPrefix(key, "/")
}

func (cb *ConsulBackend) trimKey(consulKey string) string {
	return strings.TrimPrefix(consulKey, cb.config.Prefix)
}
