package namespace

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/data/errors"
	"github.com/mwantia/ossfm/store"
	"golang.org/x/text/cases"
)

// SearchOptions bounds a recursive name search.
type SearchOptions struct {
	// PageSize is passed as MaxKeys to every listing request (0 = store.DefaultMaxKeys)
	PageSize int
	// Limit caps the number of matches (0 = unlimited)
	Limit int
}

// SearchResult holds the matches of a search. Truncated is set when Limit stopped the
// search before every page was inspected.
type SearchResult struct {
	Term      string        `json:"term"`
	RootPath  string        `json:"root_path"`
	Entries   []*data.Entry `json:"entries"`
	Pages     int           `json:"pages"`
	Truncated bool          `json:"truncated"`
}

// Search lists every key below rootPath and returns the files whose base name contains
// term, ignoring case. Entry names are relative to rootPath and keep nested folders.
func Search(ctx context.Context, lister store.Lister, term, rootPath string, opts *SearchOptions) (*SearchResult, error) {
	if strings.TrimSpace(term) == "" {
		return nil, errors.Invalid("empty search term", term)
	}
	if opts == nil {
		opts = &SearchOptions{}
	}

	rootPath = data.NormalizePrefix(rootPath)
	fold := cases.Fold()
	needle := fold.String(term)

	result := &SearchResult{
		Term:     term,
		RootPath: rootPath,
		Entries:  make([]*data.Entry, 0),
	}

	query := &store.ListQuery{
		Prefix:  rootPath,
		MaxKeys: opts.PageSize,
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := lister.List(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to search '%s': %w", rootPath, err)
		}
		result.Pages++

		for _, obj := range page.Objects {
			if data.IsFolderKey(obj.Key) || !data.HasPrefix(obj.Key, rootPath) {
				continue
			}
			if !strings.Contains(fold.String(data.BaseName(obj.Key)), needle) {
				continue
			}

			if opts.Limit > 0 && len(result.Entries) == opts.Limit {
				result.Truncated = true
				SortEntries(result.Entries)
				return result, nil
			}

			name := data.StripPrefix(obj.Key, rootPath)
			result.Entries = append(result.Entries, data.NewFileEntry(rootPath, name, obj))
		}

		if !page.Truncated {
			break
		}
		if page.NextToken == "" || page.NextToken == query.ContinuationToken {
			return nil, fmt.Errorf("failed to search '%s': store returned no progress token", rootPath)
		}
		query.ContinuationToken = page.NextToken
	}

	SortEntries(result.Entries)
	return result, nil
}
