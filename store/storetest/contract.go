// Package storetest provides the behaviour every store.RemoteStore implementation
// has to satisfy, as a reusable test suite.
package storetest

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/store"
)

// Factory creates a new, opened store instance for testing.
type Factory func(t *testing.T) (store.RemoteStore, error)

// RunContract runs the remote store contract against every factory. Keys are written
// below a random prefix, so shared buckets can be used.
func RunContract(t *testing.T, factories map[string]Factory) {
	for name, factory := range factories {
		t.Run(name, func(tst *testing.T) {
			s, err := factory(tst)
			if err != nil {
				tst.Fatalf("Backend init failed: %v", err)
			}
			if err := s.Open(tst.Context()); err != nil {
				tst.Fatalf("Backend open failed: %v", err)
			}
			tst.Cleanup(func() {
				s.Close(context.Background())
			})

			base := "contract-" + uuid.NewString() + "/"

			tst.Run("PutGet", func(tst *testing.T) { testPutGet(tst, s, base) })
			tst.Run("GetMissing", func(tst *testing.T) { testGetMissing(tst, s, base) })
			tst.Run("Copy", func(tst *testing.T) { testCopy(tst, s, base) })
			tst.Run("DeleteIdempotent", func(tst *testing.T) { testDeleteIdempotent(tst, s, base) })
			tst.Run("ListDelimiter", func(tst *testing.T) { testListDelimiter(tst, s, base) })
			tst.Run("ListPagination", func(tst *testing.T) { testListPagination(tst, s, base) })
		})
	}
}

func testPutGet(t *testing.T, s store.RemoteStore, base string) {
	ctx := t.Context()
	key := base + "put/hello.txt"
	content := []byte("hello world")

	if err := s.Put(ctx, key, content); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Expected %q, got %q", content, got)
	}

	// Overwrite replaces the content
	if err := s.Put(ctx, key, []byte("bye")); err != nil {
		t.Fatalf("Put overwrite failed: %v", err)
	}
	got, _ = s.Get(ctx, key)
	if string(got) != "bye" {
		t.Errorf("Expected overwritten content, got %q", got)
	}
}

func testGetMissing(t *testing.T, s store.RemoteStore, base string) {
	if _, err := s.Get(t.Context(), base+"missing/nothing.txt"); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}

func testCopy(t *testing.T, s store.RemoteStore, base string) {
	ctx := t.Context()
	src := base + "copy/src.txt"
	dst := base + "copy/nested/dst.txt"

	if err := s.Copy(ctx, dst, base+"copy/absent.txt"); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected ErrNotExist for absent source, got %v", err)
	}

	if err := s.Put(ctx, src, []byte("payload")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Copy(ctx, dst, src); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	for _, key := range []string{src, dst} {
		got, err := s.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get '%s' failed: %v", key, err)
		}
		if string(got) != "payload" {
			t.Errorf("Expected 'payload' at '%s', got %q", key, got)
		}
	}
}

func testDeleteIdempotent(t *testing.T, s store.RemoteStore, base string) {
	ctx := t.Context()
	key := base + "delete/a.txt"

	if err := s.Put(ctx, key, []byte("a")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.Delete(ctx, key); err != nil {
			t.Fatalf("Delete #%d failed: %v", i+1, err)
		}
	}

	if _, err := s.Get(ctx, key); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected ErrNotExist after delete, got %v", err)
	}
}

func testListDelimiter(t *testing.T, s store.RemoteStore, base string) {
	ctx := t.Context()
	prefix := base + "docs/"

	keys := []string{
		prefix,
		prefix + "a/x.txt",
		prefix + "b/",
		prefix + "readme.txt",
		base + "other.txt",
	}
	for _, key := range keys {
		if err := s.Put(ctx, key, []byte{}); err != nil {
			t.Fatalf("Put '%s' failed: %v", key, err)
		}
	}

	result, err := store.ListAll(ctx, s, &store.ListQuery{
		Prefix:    prefix,
		Delimiter: data.Delimiter,
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	objects := make([]string, 0)
	for _, obj := range result.Objects {
		objects = append(objects, obj.Key)
	}
	slices.Sort(objects)
	if !slices.Equal(objects, []string{prefix, prefix + "readme.txt"}) {
		t.Errorf("Unexpected objects: %v", objects)
	}

	prefixes := slices.Clone(result.CommonPrefixes)
	slices.Sort(prefixes)
	if !slices.Equal(prefixes, []string{prefix + "a/", prefix + "b/"}) {
		t.Errorf("Unexpected common prefixes: %v", prefixes)
	}
}

func testListPagination(t *testing.T, s store.RemoteStore, base string) {
	ctx := t.Context()
	prefix := base + "pages/"

	for _, name := range []string{"1.txt", "2.txt", "3.txt", "4.txt", "5.txt"} {
		if err := s.Put(ctx, prefix+name, []byte(name)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	query := &store.ListQuery{
		Prefix:  prefix,
		MaxKeys: 2,
	}

	first, err := s.List(ctx, query)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(first.Objects) != 2 || !first.Truncated || first.NextToken == "" {
		t.Fatalf("Expected truncated first page of 2, got %d (truncated=%v)", len(first.Objects), first.Truncated)
	}

	all, err := store.ListAll(ctx, s, query)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all.Objects) != 5 {
		t.Errorf("Expected 5 objects across pages, got %d", len(all.Objects))
	}
	if all.Truncated {
		t.Errorf("Expected complete listing")
	}
}
