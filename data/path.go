package data

import (
	"strings"
)

// Delimiter separates path segments within object keys.
const Delimiter = "/"

// ParentPath strips one trailing segment from path.
// Returns "" for "", "/" and any single-segment path.
func ParentPath(path string) string {
	if path == "" || path == Delimiter {
		return ""
	}

	trimmed := strings.TrimSuffix(path, Delimiter)
	idx := strings.LastIndex(trimmed, Delimiter)
	if idx < 0 {
		return ""
	}

	return trimmed[:idx+1]
}

// JoinRelative concatenates base and name and collapses any resulting "//".
func JoinRelative(base, name string) string {
	return CollapseSlashes(base + name)
}

// CollapseSlashes replaces every run of slashes with a single slash.
func CollapseSlashes(s string) string {
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", Delimiter)
	}
	return s
}

// NormalizePrefix turns user input into a Path: either empty or ending in "/",
// without a leading slash and without double slashes.
func NormalizePrefix(prefix string) string {
	prefix = CollapseSlashes(strings.TrimSpace(prefix))
	prefix = strings.TrimPrefix(prefix, Delimiter)
	if prefix == "" {
		return ""
	}

	if !strings.HasSuffix(prefix, Delimiter) {
		prefix += Delimiter
	}
	return prefix
}

// StripPrefix removes prefix from key. The key is returned unchanged if it does
// not start with prefix.
func StripPrefix(key, prefix string) string {
	return strings.TrimPrefix(key, prefix)
}

// HasPrefix checks if key lives below prefix. The empty prefix matches every key.
func HasPrefix(key, prefix string) bool {
	return prefix == "" || strings.HasPrefix(key, prefix)
}

// IsFolderKey reports whether key addresses a folder (directory marker or prefix).
func IsFolderKey(key string) bool {
	return strings.HasSuffix(key, Delimiter)
}

// BaseName returns the last segment of key, without a trailing slash for folders.
func BaseName(key string) string {
	trimmed := strings.TrimSuffix(key, Delimiter)
	if idx := strings.LastIndex(trimmed, Delimiter); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// DirName returns the folder part of key including its trailing slash,
// or "" for top-level keys.
func DirName(key string) string {
	trimmed := strings.TrimSuffix(key, Delimiter)
	if idx := strings.LastIndex(trimmed, Delimiter); idx >= 0 {
		return trimmed[:idx+1]
	}
	return ""
}

// Segments counts the "/"-separated segments of path.
func Segments(path string) int {
	trimmed := strings.Trim(path, Delimiter)
	if trimmed == "" {
		return 0
	}
	return strings.Count(trimmed, Delimiter) + 1
}
