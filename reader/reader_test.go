package reader_test

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/reader"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

func TestDecode(t *testing.T) {
	gb, err := simplifiedchinese.GB18030.NewEncoder().String("第一章 开始")
	if err != nil {
		t.Fatalf("Failed to encode GB18030 fixture: %v", err)
	}
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("hello")
	if err != nil {
		t.Fatalf("Failed to encode UTF-16 fixture: %v", err)
	}

	cases := map[string]struct {
		raw      []byte
		text     string
		encoding string
	}{
		"utf8":     {[]byte("plain text"), "plain text", reader.EncodingUTF8},
		"utf8 bom": {append([]byte{0xEF, 0xBB, 0xBF}, []byte("bom")...), "bom", reader.EncodingUTF8},
		"utf16le":  {[]byte(utf16), "hello", reader.EncodingUTF16LE},
		"gb18030":  {[]byte(gb), "第一章 开始", reader.EncodingGB18030},
	}

	for name, c := range cases {
		t.Run(name, func(tst *testing.T) {
			text, encoding, err := reader.Decode(c.raw)
			if err != nil {
				tst.Fatalf("Decode failed: %v", err)
			}
			if text != c.text || encoding != c.encoding {
				tst.Errorf("Expected %q (%s), got %q (%s)", c.text, c.encoding, text, encoding)
			}
		})
	}
}

func TestDecodeAs(t *testing.T) {
	gbk, err := simplifiedchinese.GBK.NewEncoder().String("中文")
	if err != nil {
		t.Fatalf("Failed to encode GBK fixture: %v", err)
	}

	text, _, err := reader.DecodeAs([]byte(gbk), "gbk")
	if err != nil {
		t.Fatalf("DecodeAs failed: %v", err)
	}
	if text != "中文" {
		t.Errorf("Expected '中文', got %q", text)
	}

	if _, _, err := reader.DecodeAs([]byte("x"), "no-such-charset"); !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected ErrInvalid for unknown encoding, got %v", err)
	}
}

func TestSplitChapters(t *testing.T) {
	text := "序言内容\n\n第一章 开端\n正文一\n　　第二章 相遇\r\n正文二\nChapter 3 The End\nfinal words\n"

	chapters, err := reader.SplitChapters(text, "")
	if err != nil {
		t.Fatalf("SplitChapters failed: %v", err)
	}

	expected := []reader.Chapter{
		{Title: "", Content: "序言内容"},
		{Title: "第一章 开端", Content: "正文一"},
		{Title: "第二章 相遇", Content: "正文二"},
		{Title: "Chapter 3 The End", Content: "final words"},
	}

	if len(chapters) != len(expected) {
		t.Fatalf("Expected %d chapters, got %d: %+v", len(expected), len(chapters), chapters)
	}
	for i := range expected {
		if chapters[i] != expected[i] {
			t.Errorf("Chapter %d: expected %+v, got %+v", i, expected[i], chapters[i])
		}
	}
}

func TestSplitChapters_NoHeadings(t *testing.T) {
	chapters, err := reader.SplitChapters("  just a note  ", "")
	if err != nil {
		t.Fatalf("SplitChapters failed: %v", err)
	}
	if len(chapters) != 1 || chapters[0].Title != "" || chapters[0].Content != "just a note" {
		t.Errorf("Unexpected chapters: %+v", chapters)
	}
}

func TestSplitChapters_CustomPattern(t *testing.T) {
	chapters, err := reader.SplitChapters("## One\na\n## Two\nb", `(?m)^## .*$`)
	if err != nil {
		t.Fatalf("SplitChapters failed: %v", err)
	}
	if len(chapters) != 2 || chapters[1].Title != "## Two" || chapters[1].Content != "b" {
		t.Errorf("Unexpected chapters: %+v", chapters)
	}

	if _, err := reader.SplitChapters("x", "("); !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected ErrInvalid for broken pattern, got %v", err)
	}
}

func TestPaginate(t *testing.T) {
	t.Run("empty", func(tst *testing.T) {
		if pages := reader.Paginate("", 10); len(pages) != 1 || pages[0] != "" {
			tst.Errorf("Expected a single empty page, got %q", pages)
		}
	})

	t.Run("runes", func(tst *testing.T) {
		text := strings.Repeat("字", 25)
		pages := reader.Paginate(text, 10)

		if len(pages) != 3 {
			tst.Fatalf("Expected 3 pages, got %d", len(pages))
		}
		for i, page := range pages {
			if n := utf8.RuneCountInString(page); n > 10 {
				tst.Errorf("Page %d has %d runes", i, n)
			}
		}
		if strings.Join(pages, "") != text {
			tst.Errorf("Pages do not reassemble the text")
		}
	})

	t.Run("line boundary", func(tst *testing.T) {
		text := "aaaaaaa\nbbbbbbb\nccc"
		pages := reader.Paginate(text, 10)

		if len(pages) != 3 || pages[0] != "aaaaaaa" || pages[1] != "bbbbbbb" || pages[2] != "ccc" {
			tst.Errorf("Unexpected pages: %q", pages)
		}
	})
}

func TestDocument(t *testing.T) {
	doc, err := reader.Open("books/novel.txt", []byte("第一章 A\n"+strings.Repeat("x", 30)+"\n第二章 B\nshort"), &reader.Options{RunesPerPage: 20})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if doc.Encoding != reader.EncodingUTF8 || len(doc.Chapters) != 2 {
		t.Fatalf("Unexpected document: %s with %d chapters", doc.Encoding, len(doc.Chapters))
	}
	if doc.PageCount(0) != 2 || doc.PageCount(1) != 1 || doc.PageCount(5) != 0 {
		t.Errorf("Unexpected page counts: %d %d", doc.PageCount(0), doc.PageCount(1))
	}

	page, err := doc.Page(1, 0)
	if err != nil || page != "short" {
		t.Errorf("Expected 'short', got %q (%v)", page, err)
	}

	if _, err := doc.Page(0, 2); !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected ErrInvalid for page out of range, got %v", err)
	}
}
