package reader

import (
	"strings"
)

// DefaultRunesPerPage is used when a page size of zero or less is requested.
const DefaultRunesPerPage = 2000

// Paginate splits text into pages of at most runesPerPage runes. Pages end after a
// line break when the window contains one in its second half. Empty text yields a
// single empty page.
func Paginate(text string, runesPerPage int) []string {
	if runesPerPage <= 0 {
		runesPerPage = DefaultRunesPerPage
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return []string{""}
	}

	pages := make([]string, 0, len(runes)/runesPerPage+1)
	for start := 0; start < len(runes); {
		end := min(start+runesPerPage, len(runes))

		if end < len(runes) {
			for i := end - 1; i > start+runesPerPage/2; i-- {
				if runes[i] == '\n' {
					end = i + 1
					break
				}
			}
		}

		page := strings.TrimRight(string(runes[start:end]), "\n")
		pages = append(pages, page)
		start = end
	}

	return pages
}
