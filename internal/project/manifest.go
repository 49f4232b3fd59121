package project

import (
	"fmt"
	"unicode"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed aether.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Check   CheckSection   `toml:"check"`
}

// PackageSection names the project and its source root.
type PackageSection struct {
	Name string `toml:"name"`
	Root string `toml:"root"`
}

// CheckSection carries defaults for the check command; zero values mean
// "use the CLI default".
type CheckSection struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Timings        bool `toml:"timings"`
	PlanCache      bool `toml:"plan_cache"`
}

// LoadManifest parses an aether.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in %q", undecoded[0].String(), path)
	}
	if m.Package.Name != "" && !IsValidPackageName(m.Package.Name) {
		return nil, fmt.Errorf("invalid package name %q in %q", m.Package.Name, path)
	}
	if m.Check.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("check.max_diagnostics must be non-negative in %q", path)
	}
	return &m, nil
}

// IsValidPackageName accepts ASCII identifiers: letter or underscore
// first, letters, digits and underscores after.
func IsValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
