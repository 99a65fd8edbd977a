package builtin_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mwantia/ossfm"
	"github.com/mwantia/ossfm/command"
	"github.com/mwantia/ossfm/command/builtin"
	"github.com/mwantia/ossfm/config"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/log"
	"github.com/mwantia/ossfm/offline"
	"github.com/mwantia/ossfm/store"
	"github.com/mwantia/ossfm/store/ephemeral"
)

type harness struct {
	center *command.CommandCenter
	fm     *ossfm.FileManager
	store  *ephemeral.EphemeralBackend
}

func newHarness(t *testing.T, objects map[string]string) *harness {
	t.Helper()

	backend := ephemeral.NewEphemeralBackend()
	for key, content := range objects {
		if err := backend.Put(t.Context(), key, []byte(content)); err != nil {
			t.Fatalf("Put '%s' failed: %v", key, err)
		}
	}

	source := config.NewStaticSource(&config.StoreConfig{
		Provider: config.ProviderEphemeral,
		RootPath: "books/",
	})
	opener := func(ctx context.Context, cfg *config.StoreConfig) (store.RemoteStore, error) {
		return backend, nil
	}

	fm, err := ossfm.New(source, opener,
		ossfm.WithLogger(log.Discard()),
		ossfm.WithOfflineStore(offline.NewMemoryStore()),
	)
	if err != nil {
		t.Fatalf("Failed to create file manager: %v", err)
	}

	center := command.NewCommandCenter()
	if err := builtin.InitBuiltin(center); err != nil {
		t.Fatalf("InitBuiltin failed: %v", err)
	}

	return &harness{center: center, fm: fm, store: backend}
}

func (h *harness) run(t *testing.T, args ...string) (string, int, error) {
	t.Helper()

	var out bytes.Buffer
	code, err := h.center.Execute(t.Context(), h.fm, &out, args...)
	return out.String(), code, err
}

func TestInitBuiltin_Duplicate(t *testing.T) {
	center := command.NewCommandCenter()
	if err := builtin.InitBuiltin(center); err != nil {
		t.Fatalf("InitBuiltin failed: %v", err)
	}
	if err := builtin.InitBuiltin(center); !errors.Is(err, data.ErrExist) {
		t.Errorf("Expected ErrExist on second registration, got %v", err)
	}

	if got := len(center.List()); got != len(builtin.Commands()) {
		t.Errorf("Expected %d commands, got %d", len(builtin.Commands()), got)
	}
}

func TestCommandCenter_Unknown(t *testing.T) {
	h := newHarness(t, nil)

	if _, code, err := h.run(t, "format", "c:"); code != 1 || !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected unknown command error, got code %d: %v", code, err)
	}
	if _, code, err := h.run(t, "ls", "--unknown"); code != 2 || !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected parse error, got code %d: %v", code, err)
	}
}

func TestLs(t *testing.T) {
	h := newHarness(t, map[string]string{
		"books/a.txt":     "a",
		"books/sci-fi/b":  "b",
		"books/empty/":    "",
		"elsewhere/c.txt": "c",
	})

	out, code, err := h.run(t, "ls", "-p")
	if err != nil || code != 0 {
		t.Fatalf("ls failed with code %d: %v", code, err)
	}

	expected := "folder\tempty/\t0\tbooks/empty/\n" +
		"folder\tsci-fi/\t0\tbooks/sci-fi/\n" +
		"file\ta.txt\t1\tbooks/a.txt\n"
	if out != expected {
		t.Errorf("Unexpected output:\n%s", out)
	}

	out, _, err = h.run(t, "ls")
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "sci-fi/") || !strings.Contains(out, "a.txt") {
		t.Errorf("Expected styled table, got:\n%s", out)
	}
}

func TestRmTrashRestorePurge(t *testing.T) {
	h := newHarness(t, map[string]string{"books/a.txt": "a", "books/b.txt": "b"})

	out, code, err := h.run(t, "rm", "books/a.txt", "books/b.txt")
	if err != nil || code != 0 {
		t.Fatalf("rm failed with code %d: %v", code, err)
	}
	if !strings.Contains(out, "soft_delete: trash/a.txt") {
		t.Errorf("Unexpected rm output:\n%s", out)
	}

	out, _, err = h.run(t, "trash", "-p")
	if err != nil {
		t.Fatalf("trash failed: %v", err)
	}
	if !strings.Contains(out, "trash/a.txt") || !strings.Contains(out, "trash/b.txt") {
		t.Errorf("Unexpected trash output:\n%s", out)
	}

	out, _, err = h.run(t, "trash", "--parent", "trash/a/b/")
	if err != nil || strings.TrimSpace(out) != "trash/a/" {
		t.Errorf("Expected parent 'trash/a/', got %q (%v)", out, err)
	}

	if _, code, err := h.run(t, "restore", "trash/a.txt"); err != nil || code != 0 {
		t.Fatalf("restore failed with code %d: %v", code, err)
	}

	if _, code, err := h.run(t, "purge", "trash/b.txt"); code != 2 || !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected purge without --yes to be refused, got code %d: %v", code, err)
	}
	if _, code, err := h.run(t, "purge", "-y", "trash/b.txt"); err != nil || code != 0 {
		t.Fatalf("purge failed with code %d: %v", code, err)
	}

	if keys := h.store.Keys(); len(keys) != 1 || keys[0] != "books/a.txt" {
		t.Errorf("Unexpected keys: %v", keys)
	}
}

func TestRm_PartialFailure(t *testing.T) {
	h := newHarness(t, map[string]string{"books/a.txt": "a"})

	out, code, err := h.run(t, "rm", "books/missing.txt", "books/a.txt")
	if code != 1 || !errors.Is(err, data.ErrNotExist) {
		t.Errorf("Expected failure for missing key, got code %d: %v", code, err)
	}
	if !strings.Contains(out, "trash/a.txt") {
		t.Errorf("Expected completed plan in output, got:\n%s", out)
	}
}

func TestMkdirMvRename(t *testing.T) {
	h := newHarness(t, map[string]string{"books/a.txt": "a"})

	steps := [][]string{
		{"mkdir", "novels"},
		{"rename", "books/a.txt", "b.txt"},
		{"mv", "books/b.txt", "books/novels"},
	}
	for _, step := range steps {
		if _, code, err := h.run(t, step...); err != nil || code != 0 {
			t.Fatalf("%s failed with code %d: %v", step[0], code, err)
		}
	}

	keys := h.store.Keys()
	if len(keys) != 2 || keys[0] != "books/novels/" || keys[1] != "books/novels/b.txt" {
		t.Errorf("Unexpected keys: %v", keys)
	}

	if _, code, err := h.run(t, "mv", "books/novels/b.txt"); code != 2 || !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected usage error, got code %d: %v", code, err)
	}
}

func TestFind(t *testing.T) {
	h := newHarness(t, map[string]string{
		"books/2023/Report.txt": "r",
		"books/notes.txt":       "n",
	})

	out, _, err := h.run(t, "find", "-p", "report")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if out != "file\t2023/Report.txt\t1\tbooks/2023/Report.txt\n" {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestGetDownloadsRead(t *testing.T) {
	h := newHarness(t, map[string]string{
		"books/novel.txt": "序言\n第一章 开始\n内容一\n第二章 结束\n内容二",
	})

	out, _, err := h.run(t, "read", "-c", "3", "books/novel.txt")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(out, "第二章 结束") || !strings.Contains(out, "内容二") {
		t.Errorf("Unexpected read output:\n%s", out)
	}

	out, _, err = h.run(t, "read", "--toc", "books/novel.txt")
	if err != nil {
		t.Fatalf("read --toc failed: %v", err)
	}
	if !strings.Contains(out, "(untitled)") || !strings.Contains(out, "第一章 开始") {
		t.Errorf("Unexpected table of contents:\n%s", out)
	}

	if _, _, err := h.run(t, "get", "books/novel.txt"); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	out, _, err = h.run(t, "downloads", "-p")
	if err != nil {
		t.Fatalf("downloads failed: %v", err)
	}
	id := strings.Split(out, "\t")[0]

	out, _, err = h.run(t, "read", "--offline", "-c", "2", id)
	if err != nil {
		t.Fatalf("offline read failed: %v", err)
	}
	if !strings.Contains(out, "内容一") {
		t.Errorf("Unexpected offline output:\n%s", out)
	}

	if _, code, err := h.run(t, "downloads", "--remove", "not-a-uuid"); code != 2 || !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected malformed id error, got code %d: %v", code, err)
	}
	if _, _, err := h.run(t, "downloads", "--remove", id); err != nil {
		t.Fatalf("downloads --remove failed: %v", err)
	}
	if _, _, err := h.run(t, "downloads", "--clear"); err != nil {
		t.Fatalf("downloads --clear failed: %v", err)
	}

	if _, code, err := h.run(t, "read", "-c", "9", "books/novel.txt"); code != 1 || !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected out of range chapter, got code %d: %v", code, err)
	}
}

func TestPing(t *testing.T) {
	h := newHarness(t, nil)

	out, code, err := h.run(t, "ping")
	if err != nil || code != 0 || strings.TrimSpace(out) != "connection ok" {
		t.Errorf("Unexpected ping result %q, code %d: %v", out, code, err)
	}
}

func TestPingCommand_Verbose(t *testing.T) {
	h := newHarness(t, nil)

	out, code, err := h.run(t, "ping", "-v")
	if err != nil || code != 0 {
		t.Fatalf("ping -v failed with code %d: %v", code, err)
	}

	for _, expected := range []string{
		"connection ok",
		"store:           ephemeral",
		"capabilities:    list, server_copy, modify_time",
		"server copy:     true",
		"max keys:        1000",
		"max object size: 10 MiB",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected %q in output:\n%s", expected, out)
		}
	}
}
