package consul

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/data/errors"
	"github.com/mwantia/ossfm/store"
)

// List reads every pair below the prefix and builds the requested page from it.
func (cb *ConsulBackend) List(ctx context.Context, query *store.ListQuery) (*data.ListResult, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	pairs, _, err := cb.kv.List(cb.buildKey(query.Prefix), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list '%s': %w", query.Prefix, classify(err, query.Prefix))
	}

	objects := make([]data.ObjectSummary, 0, len(pairs))
	for _, pair := range pairs {
		objects = append(objects, data.ObjectSummary{
			Key:          cb.trimKey(pair.Key),
			Size:         int64(len(pair.Value)),
			LastModified: modifyTime(pair),
		})
	}
	slices.SortFunc(objects, func(a, b data.ObjectSummary) int {
		return strings.Compare(a.Key, b.Key)
	})

	return store.BuildListing(objects, query), nil
}

func (cb *ConsulBackend) Get(ctx context.Context, key string) ([]byte, error) {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	pair, err := cb.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return pair.Value, nil
}

func (cb *ConsulBackend) Put(ctx context.Context, key string, content []byte) error {
	if key == "" {
		return errors.Invalid("empty key for", "put")
	}
	if len(content) > MaxObjectSize {
		return fmt.Errorf("object '%s' exceeds %d bytes: %w", key, MaxObjectSize, data.ErrUnsupported)
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.put(ctx, key, content)
}

// Copy downloads the source value and writes it again, since Consul has no server side copy.
func (cb *ConsulBackend) Copy(ctx context.Context, destinationKey, sourceKey string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	pair, err := cb.get(ctx, sourceKey)
	if err != nil {
		return fmt.Errorf("failed to copy to '%s': %w", destinationKey, err)
	}
	return cb.put(ctx, destinationKey, pair.Value)
}

func (cb *ConsulBackend) Delete(ctx context.Context, key string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if _, err := cb.kv.Delete(cb.buildKey(key), (&api.WriteOptions{}).WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete '%s': %w", key, classify(err, key))
	}
	return nil
}

func (cb *ConsulBackend) get(ctx context.Context, key string) (*api.KVPair, error) {
	pair, _, err := cb.kv.Get(cb.buildKey(key), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, classify(err, key)
	}
	if pair == nil {
		return nil, errors.NotExist(nil, key)
	}
	return pair, nil
}

func (cb *ConsulBackend) put(ctx context.Context, key string, content []byte) error {
	pair := &api.KVPair{
		Key:   cb.buildKey(key),
		Value: content,
		Flags: uint64(time.Now().UnixNano()),
	}

	if _, err := cb.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to put '%s': %w", key, classify(err, key))
	}
	return nil
}

func modifyTime(pair *api.KVPair) time.Time {
	if pair.Flags == 0 {
		return time.Time{}
	}
	return time.Unix(0, int64(pair.Flags))
}
