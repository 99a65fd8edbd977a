package namespace

import (
	"sort"
	"strings"

	"github.com/mwantia/ossfm/data"
)

// Project converts one delimiter listing into the entries visible at viewedPath.
// The listing is not modified.
func Project(result *data.ListResult, viewedPath string) []*data.Entry {
	if result == nil {
		return []*data.Entry{}
	}

	entries := make([]*data.Entry, 0, len(result.CommonPrefixes)+len(result.Objects))
	seen := make(map[string]struct{})

	addFolder := func(name string) {
		if name == "" {
			return
		}
		if _, exists := seen[name]; exists {
			return
		}

		seen[name] = struct{}{}
		entries = append(entries, data.NewFolderEntry(viewedPath, name))
	}

	for _, prefix := range result.CommonPrefixes {
		name := strings.TrimSuffix(data.StripPrefix(prefix, viewedPath), data.Delimiter)
		addFolder(name)
	}

	for _, obj := range result.Objects {
		// Directory marker of the viewed folder itself
		if obj.Key == viewedPath {
			continue
		}

		name := data.StripPrefix(obj.Key, viewedPath)
		if data.IsFolderKey(name) {
			addFolder(strings.TrimSuffix(name, data.Delimiter))
			continue
		}

		entries = append(entries, data.NewFileEntry(viewedPath, name, obj))
	}

	SortEntries(entries)
	return entries
}

// SortEntries orders entries folders first, then by name.
func SortEntries(entries []*data.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsFolder() != entries[j].IsFolder() {
			return entries[i].IsFolder()
		}
		return entries[i].Name < entries[j].Name
	})
}
