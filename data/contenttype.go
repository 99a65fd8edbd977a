package data

import (
	"path/filepath"
	"strings"
)

type ContentType string

const (
	ContentTypeTextPlain         ContentType = "text/plain"
	ContentTypeTextMarkdown      ContentType = "text/markdown"
	ContentTypeTextHTML          ContentType = "text/html"
	ContentTypeTextCSV           ContentType = "text/csv"
	ContentTypeImageJPEG         ContentType = "image/jpeg"
	ContentTypeImagePNG          ContentType = "image/png"
	ContentTypeApplicationPDF    ContentType = "application/pdf"
	ContentTypeApplicationZip    ContentType = "application/zip"
	ContentTypeApplicationJson   ContentType = "application/json"
	ContentTypeApplicationEpub   ContentType = "application/epub+zip"
	ContentTypeApplicationStream ContentType = "application/octet-stream"

	// ContentTypeDirectory marks zero-byte folder objects.
	ContentTypeDirectory ContentType = "application/x-directory"
)

// ExtensionToMIME maps file extensions to MIME types
var ExtensionToMIME = map[string]ContentType{
	".txt":  ContentTypeTextPlain,
	".log":  ContentTypeTextPlain,
	".md":   ContentTypeTextMarkdown,
	".html": ContentTypeTextHTML,
	".csv":  ContentTypeTextCSV,
	".jpg":  ContentTypeImageJPEG,
	".jpeg": ContentTypeImageJPEG,
	".png":  ContentTypeImagePNG,
	".pdf":  ContentTypeApplicationPDF,
	".zip":  ContentTypeApplicationZip,
	".json": ContentTypeApplicationJson,
	".epub": ContentTypeApplicationEpub,
}

// ContentTypeOf derives the content type of an object from its key.
func ContentTypeOf(key string) ContentType {
	if IsFolderKey(key) {
		return ContentTypeDirectory
	}

	ext := strings.ToLower(filepath.Ext(key))
	if ct, ok := ExtensionToMIME[ext]; ok {
		return ct
	}

	return ContentTypeApplicationStream
}

// IsReadable reports whether the reader can page through the object at key.
func IsReadable(key string) bool {
	switch ContentTypeOf(key) {
	case ContentTypeTextPlain, ContentTypeTextMarkdown:
		return true
	}
	return false
}
