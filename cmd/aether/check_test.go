package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"aether/internal/driver"
)

// reportResults must hand the error status back to the caller so that
// profiling cleanup runs before the process exits.
func TestReportResultsReturnsErrorStatus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.aeth")
	src := `
(module m
  (fn consume ((v string)) unit (return))
  (fn main () unit
    (let x string "a")
    (consume x)
    (consume x)
    (return)))
`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := driver.CheckFile(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasErrors() {
		t.Fatal("fixture should produce ownership errors")
	}

	settings := &checkSettings{format: "pretty", quiet: true}
	hasErrors, err := reportResults(settings, res)
	if err != nil {
		t.Fatalf("reportResults failed: %v", err)
	}
	if !hasErrors {
		t.Fatal("reportResults must report the error status")
	}
}

func TestReportResultsClean(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.aeth")
	src := `
(module m
  (fn main () unit
    (let x int 1)
    (return)))
`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := driver.CheckFile(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}

	settings := &checkSettings{format: "pretty", quiet: true}
	hasErrors, err := reportResults(settings, res)
	if err != nil {
		t.Fatalf("reportResults failed: %v", err)
	}
	if hasErrors {
		t.Fatal("clean result must not report errors")
	}
}
