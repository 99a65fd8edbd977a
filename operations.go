package ossfm

import (
	"context"
	"fmt"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/namespace"
	"github.com/mwantia/ossfm/store"
)

// List returns the folders and files directly below path. An empty path lists the
// configured root.
func (fm *FileManager) List(ctx context.Context, path string) ([]*data.Entry, error) {
	sess, err := fm.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list '%s': %w", path, err)
	}

	prefix := data.NormalizePrefix(path)
	if prefix == "" {
		prefix = sess.ns.RootPath
	}

	return fm.project(ctx, sess, prefix)
}

// ListTrash works like List but never leaves the trash root.
func (fm *FileManager) ListTrash(ctx context.Context, path string) ([]*data.Entry, error) {
	sess, err := fm.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trash '%s': %w", path, err)
	}

	return fm.project(ctx, sess, boundToTrash(path, sess.ns.TrashPath))
}

// TrashParent returns the parent of a trash path, bounded at the trash root.
func (fm *FileManager) TrashParent(ctx context.Context, path string) (string, error) {
	cfg, err := fm.source.Load(ctx)
	if err != nil {
		return "", err
	}

	trash := cfg.Namespace().TrashPath
	return boundToTrash(data.ParentPath(boundToTrash(path, trash)), trash), nil
}

func boundToTrash(path, trash string) string {
	prefix := data.NormalizePrefix(path)
	if prefix == "" || !data.HasPrefix(prefix, trash) {
		return trash
	}
	return prefix
}

func (fm *FileManager) project(ctx context.Context, sess *session, prefix string) ([]*data.Entry, error) {
	result, err := store.ListAll(ctx, fm.lister(sess.store), &store.ListQuery{
		Prefix:    prefix,
		Delimiter: data.Delimiter,
		MaxKeys:   fm.listPageSize(sess.store),
	})
	if err != nil {
		fm.log.Error("Failed to list '%s': %v", prefix, err)
		return nil, fmt.Errorf("failed to list '%s': %w", prefix, err)
	}

	return namespace.Project(result, prefix), nil
}

// Search finds files below path whose name contains term. An empty path searches
// the configured root.
func (fm *FileManager) Search(ctx context.Context, term, path string) (*namespace.SearchResult, error) {
	sess, err := fm.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search '%s': %w", term, err)
	}

	root := data.NormalizePrefix(path)
	if root == "" {
		root = sess.ns.RootPath
	}

	result, err := namespace.Search(ctx, fm.lister(sess.store), term, root, &namespace.SearchOptions{
		PageSize: fm.listPageSize(sess.store),
		Limit:    fm.searchLimit,
	})
	if err != nil {
		return nil, err
	}

	if result.Truncated {
		fm.log.Warn("Search for '%s' stopped after %d matches", term, len(result.Entries))
	}
	return result, nil
}

// TestConnection issues a single one-key listing against the configured store.
func (fm *FileManager) TestConnection(ctx context.Context) error {
	sess, err := fm.open(ctx)
	if err != nil {
		return err
	}

	_, err = fm.lister(sess.store).List(ctx, &store.ListQuery{
		Prefix:  sess.ns.RootPath,
		MaxKeys: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to reach store '%s': %w", sess.store.Name(), err)
	}
	return nil
}

// StoreInfo describes the store opened for the current configuration.
type StoreInfo struct {
	Name         string                     `json:"name"`
	Capabilities *store.BackendCapabilities `json:"capabilities"`
}

// StoreInfo opens the configured store and reports its name and capabilities.
func (fm *FileManager) StoreInfo(ctx context.Context) (*StoreInfo, error) {
	sess, err := fm.open(ctx)
	if err != nil {
		return nil, err
	}

	return &StoreInfo{
		Name:         sess.store.Name(),
		Capabilities: sess.store.GetCapabilities(),
	}, nil
}

// CreateFolder writes an empty directory marker for name below path. An empty path
// creates the folder in the configured root.
func (fm *FileManager) CreateFolder(ctx context.Context, path, name string) (*namespace.Plan, error) {
	return fm.mutate(ctx, func(sess *session) (*namespace.Plan, error) {
		if data.NormalizePrefix(path) == "" {
			path = sess.ns.RootPath
		}
		return namespace.PlanCreateFolder(path, name)
	})
}

// Rename gives a file a new base name within its folder.
func (fm *FileManager) Rename(ctx context.Context, key, newName string) (*namespace.Plan, error) {
	return fm.mutate(ctx, func(*session) (*namespace.Plan, error) {
		return namespace.PlanRename(key, newName)
	})
}

// Move relocates a file to another folder. An empty folder moves the file into the
// configured root.
func (fm *FileManager) Move(ctx context.Context, key, folder string) (*namespace.Plan, error) {
	return fm.mutate(ctx, func(sess *session) (*namespace.Plan, error) {
		if data.NormalizePrefix(folder) == "" {
			folder = sess.ns.RootPath
		}
		return namespace.PlanMove(key, folder)
	})
}

// Delete moves files into the trash.
func (fm *FileManager) Delete(ctx context.Context, keys ...string) ([]*namespace.Plan, error) {
	return fm.mutateEach(ctx, keys, func(sess *session, key string) (*namespace.Plan, error) {
		return namespace.PlanSoftDelete(key, sess.ns.RootPath, sess.ns.TrashPath)
	})
}

// Restore moves trashed files back below the root.
func (fm *FileManager) Restore(ctx context.Context, keys ...string) ([]*namespace.Plan, error) {
	return fm.mutateEach(ctx, keys, func(sess *session, key string) (*namespace.Plan, error) {
		return namespace.PlanRestore(key, sess.ns.RootPath, sess.ns.TrashPath)
	})
}

// Purge permanently deletes trashed files.
func (fm *FileManager) Purge(ctx context.Context, keys ...string) ([]*namespace.Plan, error) {
	return fm.mutateEach(ctx, keys, func(sess *session, key string) (*namespace.Plan, error) {
		return namespace.PlanPurge(key, sess.ns.TrashPath)
	})
}

type planFunc func(sess *session) (*namespace.Plan, error)

func (fm *FileManager) mutate(ctx context.Context, planner planFunc) (*namespace.Plan, error) {
	sess, err := fm.open(ctx)
	if err != nil {
		return nil, err
	}

	return fm.execute(ctx, sess, planner)
}

func (fm *FileManager) execute(ctx context.Context, sess *session, planner planFunc) (*namespace.Plan, error) {
	plan, err := planner(sess)
	if err != nil {
		return nil, err
	}

	if plan.IsEmpty() {
		fm.log.Debug("Skipping %s", plan)
		return plan, nil
	}

	fm.log.Info("Executing %s", plan)
	if !sess.store.GetCapabilities().Contains(store.CapabilityServerCopy) && plan.HasCopy() {
		fm.log.Debug("Store '%s' copies through the client for plan %s", sess.store.Name(), plan.ID)
	}
	if err := fm.executor(sess.store).Execute(ctx, plan); err != nil {
		fm.log.Error("Plan %s failed: %v", plan.ID, err)
		return plan, err
	}
	return plan, nil
}

// mutateEach plans and executes one mutation per key, keeps going after a failure and
// returns the plans that completed.
func (fm *FileManager) mutateEach(ctx context.Context, keys []string, planner func(*session, string) (*namespace.Plan, error)) ([]*namespace.Plan, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("no keys given: %w", data.ErrInvalid)
	}

	sess, err := fm.open(ctx)
	if err != nil {
		return nil, err
	}

	plans := make([]*namespace.Plan, 0, len(keys))
	errs := data.Errors{}
	for _, key := range keys {
		plan, err := fm.execute(ctx, sess, func(sess *session) (*namespace.Plan, error) {
			return planner(sess, key)
		})
		if err != nil {
			errs.Add(fmt.Errorf("'%s': %w", key, err))
			continue
		}
		plans = append(plans, plan)
	}

	return plans, errs.Errors()
}
