package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwantia/ossfm/data"
)

// DefaultMaxKeys is the single-page cap of S3 compatible stores.
const DefaultMaxKeys = 1000

type ListQuery struct {
	// Prefix matches keys starting with this string
	// Example: "data/cache/" lists everything under that folder
	Prefix string `json:"prefix"`

	// Delimiter for hierarchical listing
	// "/" means only immediate children (stops at next slash)
	// "" means recursive (all descendants)
	Delimiter string `json:"delimiter,omitempty"`

	// Max keys and common prefixes per page (0 = DefaultMaxKeys)
	MaxKeys int `json:"max_keys"`

	// ContinuationToken resumes a previous truncated listing
	ContinuationToken string `json:"continuation_token,omitempty"`
}

// Limit returns the effective page size.
func (q *ListQuery) Limit() int {
	if q.MaxKeys <= 0 || q.MaxKeys > DefaultMaxKeys {
		return DefaultMaxKeys
	}
	return q.MaxKeys
}

// ListAll follows continuation tokens until the listing is complete.
func ListAll(ctx context.Context, lister Lister, query *ListQuery) (*data.ListResult, error) {
	next := *query
	result := &data.ListResult{
		Objects:        make([]data.ObjectSummary, 0),
		CommonPrefixes: make([]string, 0),
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := lister.List(ctx, &next)
		if err != nil {
			return nil, err
		}

		result.Merge(page)
		if !page.Truncated {
			return result, nil
		}

		if page.NextToken == "" || page.NextToken == next.ContinuationToken {
			return nil, fmt.Errorf("failed to list '%s': store returned no progress token", query.Prefix)
		}
		next.ContinuationToken = page.NextToken
	}
}

// BuildListing computes one listing page from a key ordered slice of objects, for stores
// without native delimiter support. The continuation token is the last key or common
// prefix of the previous page.
func BuildListing(objects []data.ObjectSummary, query *ListQuery) *data.ListResult {
	limit := query.Limit()
	result := &data.ListResult{
		Objects:        make([]data.ObjectSummary, 0),
		CommonPrefixes: make([]string, 0),
	}

	last := ""
	count := 0
	for _, obj := range objects {
		if !strings.HasPrefix(obj.Key, query.Prefix) {
			continue
		}

		item, isPrefix := rollup(obj.Key, query.Prefix, query.Delimiter)
		if query.ContinuationToken != "" && item <= query.ContinuationToken {
			continue
		}
		// Consecutive keys below the same common prefix
		if isPrefix && item == last {
			continue
		}

		if count == limit {
			result.Truncated = true
			result.NextToken = last
			break
		}

		if isPrefix {
			result.CommonPrefixes = append(result.CommonPrefixes, item)
		} else {
			result.Objects = append(result.Objects, obj)
		}

		last = item
		count++
	}

	return result
}

// rollup returns the common prefix key belongs to, or the key itself.
func rollup(key, prefix, delimiter string) (string, bool) {
	if delimiter == "" {
		return key, false
	}

	rest := key[len(prefix):]
	if idx := strings.Index(rest, delimiter); idx >= 0 {
		return prefix + rest[:idx+len(delimiter)], true
	}
	return key, false
}
