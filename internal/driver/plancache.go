package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"aether/internal/project"
)

// Bump when the payload layout changes; stale entries are ignored.
const planCacheSchemaVersion uint16 = 1

// EventRecord is one ownership event in serialized form.
type EventRecord struct {
	Kind    uint8
	Binding uint32
	Start   uint32
	End     uint32
}

// FnPlan is the exported move plan of one function.
type FnPlan struct {
	Name     string
	Verified bool
	Events   []EventRecord
}

// PlanPayload stores the per-file ownership analysis keyed by content
// hash, so an unchanged file skips re-checking in tooling that only
// needs the plan.
type PlanPayload struct {
	Schema      uint16
	Path        string
	ContentHash project.Digest
	Functions   []FnPlan
}

// ExportPlans flattens the checker output into a cacheable payload.
// Returns nil when the result carries no analysis.
func ExportPlans(res *CheckResult) *PlanPayload {
	if res == nil || res.Sema == nil {
		return nil
	}
	astFile := res.Arenas.Files.Get(res.File)
	payload := &PlanPayload{
		Schema:      planCacheSchemaVersion,
		Path:        res.Path,
		ContentHash: project.Digest(res.FileSet.Get(res.FileID).Hash),
		Functions:   make([]FnPlan, 0, len(astFile.Items)),
	}
	for _, item := range astFile.Items {
		fn, ok := res.Arenas.Items.Fn(item)
		if !ok {
			continue
		}
		plan := res.Sema.Plans[item]
		fp := FnPlan{
			Name:     res.Arenas.StringsInterner.MustLookup(fn.Name),
			Verified: res.Sema.Verified[item],
		}
		if plan != nil {
			fp.Events = make([]EventRecord, len(plan.Events))
			for i, ev := range plan.Events {
				fp.Events[i] = EventRecord{
					Kind:    uint8(ev.Kind),
					Binding: uint32(ev.Binding),
					Start:   ev.Span.Start,
					End:     ev.Span.End,
				}
			}
		}
		payload.Functions = append(payload.Functions, fp)
	}
	return payload
}

// PlanCache stores payloads on disk under the user cache directory.
// Safe for concurrent use.
type PlanCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenPlanCache initializes a cache at $XDG_CACHE_HOME/<app> (or
// ~/.cache/<app>).
func OpenPlanCache(app string) (*PlanCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return &PlanCache{dir: dir}, nil
}

// OpenPlanCacheAt initializes a cache rooted at an explicit directory.
func OpenPlanCacheAt(dir string) (*PlanCache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return &PlanCache{dir: dir}, nil
}

func (c *PlanCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "plans", hex.EncodeToString(key[:])+".mp")
}

// Put serializes the payload and installs it atomically.
func (c *PlanCache) Put(key project.Digest, payload *PlanPayload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get loads a payload; the second return is false on a miss or on a
// schema mismatch.
func (c *PlanCache) Get(key project.Digest, out *PlanPayload) (bool, error) {
	if c == nil || out == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "plan cache: close: %v\n", closeErr)
		}
	}()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != planCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}
