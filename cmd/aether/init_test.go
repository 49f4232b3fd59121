package main

import (
	"os"
	"path/filepath"
	"testing"

	"aether/internal/project"
)

func TestDefaultManifestParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(defaultManifest("demo")), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := project.LoadManifest(path)
	if err != nil {
		t.Fatalf("default manifest should parse: %v", err)
	}
	if m.Package.Name != "demo" {
		t.Fatalf("package name = %q, want demo", m.Package.Name)
	}
	if m.Check.MaxDiagnostics != 100 {
		t.Fatalf("max_diagnostics = %d, want 100", m.Check.MaxDiagnostics)
	}
}

func TestDefaultManifestFallbackName(t *testing.T) {
	if !project.IsValidPackageName("aether_project") {
		t.Fatal("fallback project name must be a valid package name")
	}
}
