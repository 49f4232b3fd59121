package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"aether/internal/diag"
	"aether/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("(module m\n  (fn main () unit\n    (consume x)))\n")
	fileID := fs.AddVirtual("src/test.aeth", content)

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(
		diag.OwnUseAfterMove,
		source.Span{File: fileID, Start: 40, End: 41},
		"use of moved value x",
	).WithNote(source.Span{File: fileID, Start: 12, End: 14}, "value moved here"))
	return bag, fs, fileID
}

func TestPrettyHeaderLine(t *testing.T) {
	bag, fs, _ := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 0})
	out := buf.String()

	for _, want := range []string{"src/test.aeth:3:", "ERROR", "OWN3100", "use of moved value x"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "value moved here") {
		t.Errorf("notes should be off by default:\n%s", out)
	}
}

func TestPrettyShowsNotesAndUnderline(t *testing.T) {
	bag, fs, _ := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	out := buf.String()

	if !strings.Contains(out, "value moved here") {
		t.Errorf("note missing:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("caret underline missing:\n%s", out)
	}
	if !strings.Contains(out, "(consume x)") {
		t.Errorf("context line missing:\n%s", out)
	}
}

func TestPrettyPathModes(t *testing.T) {
	bag, fs, _ := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: -1, PathMode: PathModeBasename})
	if !strings.Contains(buf.String(), "test.aeth:") {
		t.Errorf("basename mode should strip directories:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "src/test.aeth") {
		t.Errorf("basename mode kept the directory:\n%s", buf.String())
	}
}
