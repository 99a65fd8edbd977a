package namespace_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/namespace"
	"github.com/mwantia/ossfm/store"
	"github.com/mwantia/ossfm/store/ephemeral"
)

// countingLister counts listing requests issued against the wrapped store.
type countingLister struct {
	store.Lister
	requests int
}

func (cl *countingLister) List(ctx context.Context, query *store.ListQuery) (*data.ListResult, error) {
	cl.requests++
	return cl.Lister.List(ctx, query)
}

func newSearchStore(t *testing.T, keys ...string) *ephemeral.EphemeralBackend {
	t.Helper()

	eb := ephemeral.NewEphemeralBackend()
	for _, key := range keys {
		if err := eb.Put(t.Context(), key, []byte(key)); err != nil {
			t.Fatalf("Put '%s' failed: %v", key, err)
		}
	}
	return eb
}

func TestSearch_Filter(t *testing.T) {
	eb := newSearchStore(t, "data/2023/report_final.txt", "data/2023/notes.txt")

	result, err := namespace.Search(t.Context(), eb, "report", "data/", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(result.Entries) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(result.Entries))
	}

	entry := result.Entries[0]
	if entry.Name != "2023/report_final.txt" || entry.FullKey != "data/2023/report_final.txt" {
		t.Errorf("Unexpected entry: %+v", entry)
	}
	if result.Truncated {
		t.Errorf("Expected complete result")
	}
}

func TestSearch_CaseInsensitiveBaseName(t *testing.T) {
	eb := newSearchStore(t,
		"data/REPORTS/summary.txt",
		"data/Quarterly-Report.PDF",
		"data/report/",
		"outside/report.txt",
	)

	result, err := namespace.Search(t.Context(), eb, "rePort", "data", nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// Folder names and markers do not match, only base names of files
	if len(result.Entries) != 1 || result.Entries[0].Name != "Quarterly-Report.PDF" {
		t.Errorf("Unexpected matches: %+v", result.Entries)
	}
}

func TestSearch_Paginates(t *testing.T) {
	eb := newSearchStore(t,
		"data/a/match1.txt",
		"data/b/skip.txt",
		"data/c/match2.txt",
		"data/d/skip.txt",
		"data/e/match3.txt",
	)
	lister := &countingLister{Lister: eb}

	result, err := namespace.Search(t.Context(), lister, "match", "data/", &namespace.SearchOptions{PageSize: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(result.Entries) != 3 {
		t.Errorf("Expected matches from every page, got %d", len(result.Entries))
	}
	if lister.requests != 3 || result.Pages != 3 {
		t.Errorf("Expected 3 listing pages, got %d requests and %d pages", lister.requests, result.Pages)
	}
}

func TestSearch_Limit(t *testing.T) {
	eb := newSearchStore(t, "data/match1", "data/match2", "data/match3")

	result, err := namespace.Search(t.Context(), eb, "match", "data/", &namespace.SearchOptions{Limit: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(result.Entries) != 2 || !result.Truncated {
		t.Errorf("Expected 2 entries and truncation, got %d (truncated=%v)", len(result.Entries), result.Truncated)
	}
}

func TestSearch_EmptyTerm(t *testing.T) {
	if _, err := namespace.Search(t.Context(), ephemeral.NewEphemeralBackend(), " ", "", nil); !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}
