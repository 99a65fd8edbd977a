package namespace_test

import (
	"testing"
	"time"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/namespace"
)

func TestProject_Scenario(t *testing.T) {
	modified := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	listing := &data.ListResult{
		CommonPrefixes: []string{"docs/b/", "docs/a/"},
		Objects: []data.ObjectSummary{
			{Key: "docs/readme.txt", Size: 12, LastModified: modified},
		},
	}

	entries := namespace.Project(listing, "docs/")
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	expected := []struct {
		name    string
		kind    data.EntryKind
		fullKey string
	}{
		{"a", data.KindFolder, "docs/a/"},
		{"b", data.KindFolder, "docs/b/"},
		{"readme.txt", data.KindFile, "docs/readme.txt"},
	}

	for i, exp := range expected {
		entry := entries[i]
		if entry.Name != exp.name || entry.Kind != exp.kind || entry.FullKey != exp.fullKey {
			t.Errorf("Entry %d: expected %s %s (%s), got %s %s (%s)",
				i, exp.kind, exp.name, exp.fullKey, entry.Kind, entry.Name, entry.FullKey)
		}
	}

	if entries[2].Size != 12 || !entries[2].LastModified.Equal(modified) {
		t.Errorf("Expected file size 12 and time %v, got %d %v", modified, entries[2].Size, entries[2].LastModified)
	}
}

func TestProject_SkipsViewedPath(t *testing.T) {
	listing := &data.ListResult{
		CommonPrefixes: []string{"docs/", "docs/sub/"},
		Objects: []data.ObjectSummary{
			{Key: "docs/"},
			{Key: "docs/a.txt", Size: 1},
		},
	}

	entries := namespace.Project(listing, "docs/")
	for _, entry := range entries {
		if entry.FullKey == "docs/" {
			t.Errorf("Projection emitted the viewed path itself: %+v", entry)
		}
	}

	if len(entries) != 2 {
		t.Errorf("Expected folder 'sub' and file 'a.txt', got %d entries", len(entries))
	}
}

func TestProject_RootAndMarkers(t *testing.T) {
	listing := &data.ListResult{
		Objects: []data.ObjectSummary{
			{Key: "z.txt"},
			{Key: "nested/"},
			{Key: "a.txt"},
		},
		CommonPrefixes: []string{"nested/"},
	}

	entries := namespace.Project(listing, "")
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}

	expected := []string{"nested", "a.txt", "z.txt"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, names)
			break
		}
	}

	if !entries[0].IsFolder() || entries[0].FullKey != "nested/" {
		t.Errorf("Expected marker to project as folder 'nested/', got %+v", entries[0])
	}
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	listing := &data.ListResult{
		CommonPrefixes: []string{"b/", "a/"},
		Objects:        []data.ObjectSummary{{Key: "z"}, {Key: "y"}},
	}

	namespace.Project(listing, "")

	if listing.CommonPrefixes[0] != "b/" || listing.Objects[0].Key != "z" {
		t.Errorf("Projection reordered its input: %+v", listing)
	}
}

func TestProject_Nil(t *testing.T) {
	if entries := namespace.Project(nil, "docs/"); len(entries) != 0 {
		t.Errorf("Expected no entries for nil listing, got %d", len(entries))
	}
}
