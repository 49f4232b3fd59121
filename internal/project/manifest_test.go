package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
root = "src"

[check]
max_diagnostics = 50
timings = true
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Package.Name != "demo" || m.Package.Root != "src" {
		t.Fatalf("package section = %+v", m.Package)
	}
	if m.Check.MaxDiagnostics != 50 || !m.Check.Timings {
		t.Fatalf("check section = %+v", m.Check)
	}
}

func TestLoadManifestRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nname = \"demo\"\nbogus = 1\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("want error for unknown key")
	}
}

func TestLoadManifestRejectsBadName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nname = \"9lives\"\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("want error for invalid package name")
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("manifest found at %q, want under %q", path, root)
	}

	gotRoot, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || gotRoot != root {
		t.Fatalf("FindProjectRoot = %q ok=%v err=%v", gotRoot, ok, err)
	}
}

func TestFindManifestMissing(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindManifest(dir)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if ok {
		t.Fatal("found a manifest in an empty directory")
	}
}

func TestIsValidPackageName(t *testing.T) {
	valid := []string{"demo", "_x", "a_b2"}
	invalid := []string{"", "9x", "a-b", "пакет"}
	for _, name := range valid {
		if !IsValidPackageName(name) {
			t.Errorf("IsValidPackageName(%q) = false", name)
		}
	}
	for _, name := range invalid {
		if IsValidPackageName(name) {
			t.Errorf("IsValidPackageName(%q) = true", name)
		}
	}
}
