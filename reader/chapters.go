package reader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mwantia/ossfm/data"
)

// DefaultChapterPattern matches headings such as "第十二章 归来", "第3回" or "Chapter 7".
const DefaultChapterPattern = `(?m)^[ \t\x{3000}]*((第[0-9零一二三四五六七八九十百千万两〇]+[章回节卷][^\n]*)|(Chapter[ \t]+[0-9IVXLC]+[^\n]*))$`

// Chapter is a titled section of a text. The prologue before the first heading has
// an empty title.
type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SplitChapters splits text at every line matching pattern. An empty pattern uses
// DefaultChapterPattern. Text without any heading becomes a single untitled chapter.
func SplitChapters(text, pattern string) ([]Chapter, error) {
	if pattern == "" {
		pattern = DefaultChapterPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chapter pattern: %w: %w", data.ErrInvalid, err)
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Chapter{{Content: strings.TrimSpace(text)}}, nil
	}

	chapters := make([]Chapter, 0, len(matches)+1)
	if prologue := strings.TrimSpace(text[:matches[0][0]]); prologue != "" {
		chapters = append(chapters, Chapter{Content: prologue})
	}

	for i, match := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		chapters = append(chapters, Chapter{
			Title:   strings.TrimSpace(text[match[0]:match[1]]),
			Content: strings.TrimSpace(text[match[1]:end]),
		})
	}

	return chapters, nil
}
