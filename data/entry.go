package data

import (
	"encoding/json"
	"time"
)

// EntryKind identifies whether an entry is a file object or a synthesized folder.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindFolder
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

func (k EntryKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Entry is one item of a namespace view, relative to the path being viewed.
type Entry struct {
	// Name relative to the viewed path; contains slashes only for nested search results.
	Name string    `json:"name"`
	Kind EntryKind `json:"kind"`

	// Size in bytes, meaningful only for files.
	Size int64 `json:"size"`
	// LastModified is meaningful only for files.
	LastModified time.Time `json:"last_modified"`

	// FullKey addresses the entry on the remote store.
	FullKey string `json:"full_key"`
}

// NewFolderEntry creates a folder entry below viewedPath.
func NewFolderEntry(viewedPath, name string) *Entry {
	return &Entry{
		Name:    name,
		Kind:    KindFolder,
		FullKey: JoinRelative(viewedPath, name+Delimiter),
	}
}

// NewFileEntry creates a file entry below viewedPath from an object summary.
func NewFileEntry(viewedPath, name string, obj ObjectSummary) *Entry {
	return &Entry{
		Name:         name,
		Kind:         KindFile,
		Size:         obj.Size,
		LastModified: obj.LastModified,
		FullKey:      JoinRelative(viewedPath, name),
	}
}

func (e *Entry) IsFolder() bool {
	return e.Kind == KindFolder
}
