package data

import (
	"time"
)

// ObjectSummary is the low-level description of one object as returned by a store listing.
type ObjectSummary struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag,omitempty"`
}

// ListResult holds one page of a prefix listing.
type ListResult struct {
	// Objects directly under the prefix (or all descendants without delimiter).
	Objects []ObjectSummary `json:"objects"`

	// CommonPrefixes are full keys ending in the delimiter, one per immediate child folder.
	CommonPrefixes []string `json:"common_prefixes"`

	// NextToken resumes the listing when Truncated is set.
	NextToken string `json:"next_token,omitempty"`
	Truncated bool   `json:"truncated"`
}

// Merge appends the objects and prefixes of other and adopts its continuation state.
func (lr *ListResult) Merge(other *ListResult) {
	if other == nil {
		return
	}

	lr.Objects = append(lr.Objects, other.Objects...)
	lr.CommonPrefixes = append(lr.CommonPrefixes, other.CommonPrefixes...)
	lr.NextToken = other.NextToken
	lr.Truncated = other.Truncated
}
