package data_test

import (
	"errors"
	"testing"

	"github.com/mwantia/ossfm/data"
	derrors "github.com/mwantia/ossfm/data/errors"
)

func TestParentPath(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"/":        "",
		"a/":       "",
		"a/b/":     "a/",
		"a/b/c/":   "a/b/",
		"a/b/c.go": "a/b/",
		"a":        "",
	}

	for input, expected := range cases {
		if got := data.ParentPath(input); got != expected {
			t.Errorf("ParentPath(%q): expected %q, got %q", input, expected, got)
		}
	}
}

// TestParentPath_Terminates verifies that repeated application reaches the empty
// path within the number of segments of the input.
func TestParentPath_Terminates(t *testing.T) {
	paths := []string{"", "/", "a/", "a/b/", "data/2023/q1/reports/", "x/y/z/file.txt"}

	for _, path := range paths {
		t.Run(path, func(tst *testing.T) {
			current := path
			steps := 0
			for current != "" {
				current = data.ParentPath(current)
				steps++

				if steps > data.Segments(path) {
					tst.Fatalf("ParentPath did not reach root within %d steps for %q", data.Segments(path), path)
				}
			}
		})
	}
}

func TestJoinRelative(t *testing.T) {
	cases := []struct {
		base, name, expected string
	}{
		{"", "a.txt", "a.txt"},
		{"docs/", "a.txt", "docs/a.txt"},
		{"docs/", "/a.txt", "docs/a.txt"},
		{"docs//", "sub/", "docs/sub/"},
		{"trash/", "//deep//x", "trash/deep/x"},
	}

	for _, c := range cases {
		if got := data.JoinRelative(c.base, c.name); got != c.expected {
			t.Errorf("JoinRelative(%q, %q): expected %q, got %q", c.base, c.name, c.expected, got)
		}
	}
}

func TestNormalizePrefix(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"/":        "",
		"data":     "data/",
		"/data/":   "data/",
		" trash ":  "trash/",
		"a//b":     "a/b/",
		"a/b/":     "a/b/",
		"//nested": "nested/",
	}

	for input, expected := range cases {
		if got := data.NormalizePrefix(input); got != expected {
			t.Errorf("NormalizePrefix(%q): expected %q, got %q", input, expected, got)
		}
	}
}

func TestBaseAndDirName(t *testing.T) {
	cases := []struct {
		key, base, dir string
	}{
		{"a.txt", "a.txt", ""},
		{"docs/a.txt", "a.txt", "docs/"},
		{"docs/sub/", "sub", "docs/"},
		{"docs/", "docs", ""},
		{"a/b/c/d.md", "d.md", "a/b/c/"},
	}

	for _, c := range cases {
		if got := data.BaseName(c.key); got != c.base {
			t.Errorf("BaseName(%q): expected %q, got %q", c.key, c.base, got)
		}
		if got := data.DirName(c.key); got != c.dir {
			t.Errorf("DirName(%q): expected %q, got %q", c.key, c.dir, got)
		}
	}
}

func TestErrorConstructors_KeepSentinel(t *testing.T) {
	cause := errors.New("NoSuchKey")

	err := derrors.NotExist(cause, "docs/a.txt")
	if !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected ErrNotExist in chain, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected vendor cause in chain, got %v", err)
	}

	if err := derrors.NetworkOrAuth(cause, "minio"); !errors.Is(err, data.ErrNetworkOrAuth) {
		t.Errorf("Expected ErrNetworkOrAuth in chain, got %v", err)
	}

	if err := derrors.Unsupported(nil, "rename", "docs/"); !errors.Is(err, data.ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported in chain, got %v", err)
	}
}

func TestMessage(t *testing.T) {
	if msg := data.Message(nil); msg != "" {
		t.Errorf("Expected empty message for nil, got %q", msg)
	}

	msg := data.Message(derrors.ConfigMissing("no vault"))
	if msg != "No storage configuration found, run 'ossfm configure' first" {
		t.Errorf("Unexpected config message: %q", msg)
	}
}

func TestContentTypeOf(t *testing.T) {
	if ct := data.ContentTypeOf("docs/"); ct != data.ContentTypeDirectory {
		t.Errorf("Expected directory content type, got %s", ct)
	}
	if !data.IsReadable("books/novel.TXT") {
		t.Errorf("Expected .TXT to be readable")
	}
	if data.IsReadable("images/cat.png") {
		t.Errorf("Expected .png not to be readable")
	}
}
