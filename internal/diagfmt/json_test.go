package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"aether/internal/diag"
	"aether/internal/source"
)

func TestJSONOutputShape(t *testing.T) {
	bag, fs, _ := sampleBag(t)

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, IncludeNotes: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "OWN3100" {
		t.Errorf("code = %q", d.Code)
	}
	if d.Severity != "ERROR" {
		t.Errorf("severity = %q", d.Severity)
	}
	if d.Location.StartLine != 3 {
		t.Errorf("start line = %d, want 3", d.Location.StartLine)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "value moved here" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.aeth", []byte("(module m)\n"))
	bag := diag.NewBag(10)
	for i := 0; i < 5; i++ {
		bag.Add(diag.NewError(diag.SemaError, source.Span{File: fileID, Start: uint32(i), End: uint32(i) + 1}, "x"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d, want 2", out.Count, len(out.Diagnostics))
	}
}

func TestJSONOmitsNotesByDefault(t *testing.T) {
	bag, fs, _ := sampleBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Errorf("notes included without IncludeNotes: %+v", out.Diagnostics[0].Notes)
	}
}
