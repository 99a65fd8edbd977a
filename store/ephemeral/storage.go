package ephemeral

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/data/errors"
	"github.com/mwantia/ossfm/store"
)

func (eb *EphemeralBackend) List(ctx context.Context, query *store.ListQuery) (*data.ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	candidates := make([]data.ObjectSummary, 0)
	eb.objects.Ascend(query.Prefix, func(key string, obj *object) bool {
		if !strings.HasPrefix(key, query.Prefix) {
			return false
		}

		candidates = append(candidates, data.ObjectSummary{
			Key:          key,
			Size:         int64(len(obj.content)),
			LastModified: obj.lastModified,
		})
		return true
	})

	return store.BuildListing(candidates, query), nil
}

func (eb *EphemeralBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	obj, exists := eb.objects.Get(key)
	if !exists {
		return nil, errors.NotExist(nil, key)
	}

	content := make([]byte, len(obj.content))
	copy(content, obj.content)
	return content, nil
}

func (eb *EphemeralBackend) Put(ctx context.Context, key string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return errors.Invalid("empty key for", "put")
	}

	eb.mu.Lock()
	defer eb.mu.Unlock()

	buffer := make([]byte, len(content))
	copy(buffer, content)

	eb.objects.Set(key, &object{
		content:      buffer,
		lastModified: eb.now(),
	})
	return nil
}

func (eb *EphemeralBackend) Copy(ctx context.Context, destinationKey, sourceKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	eb.mu.Lock()
	defer eb.mu.Unlock()

	src, exists := eb.objects.Get(sourceKey)
	if !exists {
		return fmt.Errorf("failed to copy to '%s': %w", destinationKey, errors.NotExist(nil, sourceKey))
	}

	buffer := make([]byte, len(src.content))
	copy(buffer, src.content)

	eb.objects.Set(destinationKey, &object{
		content:      buffer,
		lastModified: eb.now(),
	})
	return nil
}

func (eb *EphemeralBackend) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.objects.Delete(key)
	return nil
}
