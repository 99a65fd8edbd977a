package reader

import (
	"fmt"

	"github.com/mwantia/ossfm/data"
)

// Options controls how a document is split.
type Options struct {
	ChapterPattern string
	RunesPerPage   int
}

// Document is a decoded text, split into chapters and pages.
type Document struct {
	Key      string    `json:"key"`
	Encoding string    `json:"encoding"`
	Chapters []Chapter `json:"chapters"`

	pages [][]string
}

// NewDocument splits already decoded text.
func NewDocument(key, text, encoding string, opts *Options) (*Document, error) {
	if opts == nil {
		opts = &Options{}
	}

	chapters, err := SplitChapters(text, opts.ChapterPattern)
	if err != nil {
		return nil, err
	}

	pages := make([][]string, len(chapters))
	for i, chapter := range chapters {
		pages[i] = Paginate(chapter.Content, opts.RunesPerPage)
	}

	return &Document{
		Key:      key,
		Encoding: encoding,
		Chapters: chapters,
		pages:    pages,
	}, nil
}

// Open decodes raw content and splits it.
func Open(key string, raw []byte, opts *Options) (*Document, error) {
	text, encoding, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return NewDocument(key, text, encoding, opts)
}

// PageCount returns the number of pages of a chapter, or 0 when out of range.
func (d *Document) PageCount(chapter int) int {
	if chapter < 0 || chapter >= len(d.pages) {
		return 0
	}
	return len(d.pages[chapter])
}

// Page returns one page of a chapter, both indexed from zero.
func (d *Document) Page(chapter, page int) (string, error) {
	if chapter < 0 || chapter >= len(d.pages) {
		return "", fmt.Errorf("chapter %d of %d: %w", chapter+1, len(d.pages), data.ErrInvalid)
	}
	if page < 0 || page >= len(d.pages[chapter]) {
		return "", fmt.Errorf("page %d of %d: %w", page+1, len(d.pages[chapter]), data.ErrInvalid)
	}
	return d.pages[chapter][page], nil
}
