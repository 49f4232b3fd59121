package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"aether/internal/token"
)

const cleanSource = `(module demo
  (fn consume ((v string)) unit (return))
  (fn main () unit
    (let x string "a")
    (consume x)
    (return)))
`

const brokenSource = `(module demo
  (fn consume ((v string)) unit (return))
  (fn main () unit
    (let x string "a")
    (consume x)
    (consume x)
    (return)))
`

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCheckFileClean(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.aeth", cleanSource)

	res, err := CheckFile(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if res.Sema == nil {
		t.Fatal("missing sema result")
	}
	for _, item := range res.Arenas.Files.Get(res.File).Items {
		if !res.Sema.Verified[item] {
			t.Fatalf("function %v not verified", item)
		}
	}
	if len(res.Timing.Phases) == 0 {
		t.Fatal("missing phase timings")
	}
}

func TestCheckFileReportsOwnershipErrors(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.aeth", brokenSource)

	res, err := CheckFile(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if !res.HasErrors() {
		t.Fatal("expected a double-move diagnostic")
	}
}

func TestCheckFileMissing(t *testing.T) {
	if _, err := CheckFile(context.Background(), filepath.Join(t.TempDir(), "nope.aeth"), nil); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestTokenize(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.aeth", "(module m)\n")

	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	// ( module m ) EOF
	if len(res.Tokens) != 5 {
		t.Fatalf("token count = %d, want 5", len(res.Tokens))
	}
	if res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Fatal("stream must end with EOF")
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *recordingSink) count(status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, evt := range s.events {
		if evt.Status == status {
			n++
		}
	}
	return n
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.aeth", cleanSource)
	writeSource(t, dir, "b.aeth", brokenSource)

	sink := &recordingSink{}
	res, err := CheckDir(context.Background(), dir, 2, &CheckOptions{Progress: sink})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(res.Results))
	}
	if filepath.Base(res.Results[0].Path) != "a.aeth" || filepath.Base(res.Results[1].Path) != "b.aeth" {
		t.Fatalf("results out of order: %q, %q", res.Results[0].Path, res.Results[1].Path)
	}
	if res.Results[0].HasErrors() {
		t.Fatal("a.aeth should be clean")
	}
	if !res.Results[1].HasErrors() {
		t.Fatal("b.aeth should report errors")
	}
	if !res.HasErrors() {
		t.Fatal("aggregate must reflect b.aeth errors")
	}
	if got := sink.count(StatusQueued); got != 2 {
		t.Fatalf("queued events = %d, want 2", got)
	}
}

func TestCheckDirEmpty(t *testing.T) {
	if _, err := CheckDir(context.Background(), t.TempDir(), 0, nil); err == nil {
		t.Fatal("want error for a directory without sources")
	}
}

func TestListSourceFilesSkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.aeth", cleanSource)
	hidden := filepath.Join(dir, ".cache")
	if err := os.MkdirAll(hidden, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeSource(t, hidden, "x.aeth", cleanSource)

	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("files = %v, want only a.aeth", files)
	}
}
