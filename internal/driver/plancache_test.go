package driver

import (
	"context"
	"testing"

	"aether/internal/ownership"
	"aether/internal/project"
)

func checkClean(t *testing.T) *CheckResult {
	t.Helper()
	path := writeSource(t, t.TempDir(), "main.aeth", cleanSource)
	res, err := CheckFile(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	return res
}

func TestExportPlans(t *testing.T) {
	res := checkClean(t)

	payload := ExportPlans(res)
	if payload == nil {
		t.Fatal("nil payload for a checked file")
	}
	if payload.Schema != planCacheSchemaVersion {
		t.Fatalf("schema = %d", payload.Schema)
	}
	if len(payload.Functions) != 2 {
		t.Fatalf("functions = %d, want 2", len(payload.Functions))
	}

	var mainPlan *FnPlan
	for i := range payload.Functions {
		if payload.Functions[i].Name == "main" {
			mainPlan = &payload.Functions[i]
		}
		if !payload.Functions[i].Verified {
			t.Errorf("function %s not verified", payload.Functions[i].Name)
		}
	}
	if mainPlan == nil {
		t.Fatal("main plan missing")
	}
	moves := 0
	for _, ev := range mainPlan.Events {
		if ev.Kind == uint8(ownership.EvMove) {
			moves++
		}
	}
	if moves != 1 {
		t.Fatalf("moves in main = %d, want 1", moves)
	}
}

func TestPlanCacheRoundTrip(t *testing.T) {
	cache, err := OpenPlanCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenPlanCacheAt: %v", err)
	}
	res := checkClean(t)
	payload := ExportPlans(res)
	key := payload.ContentHash

	var miss PlanPayload
	if ok, err := cache.Get(key, &miss); err != nil || ok {
		t.Fatalf("expected a miss, ok=%v err=%v", ok, err)
	}

	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got PlanPayload
	ok, err := cache.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Path != payload.Path || len(got.Functions) != len(payload.Functions) {
		t.Fatalf("payload mismatch: %+v vs %+v", got, payload)
	}
}

func TestPlanCacheSchemaMismatch(t *testing.T) {
	cache, err := OpenPlanCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenPlanCacheAt: %v", err)
	}
	stale := &PlanPayload{Schema: planCacheSchemaVersion + 1}
	key := project.Digest{1}
	if err := cache.Put(key, stale); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out PlanPayload
	if ok, err := cache.Get(key, &out); err != nil || ok {
		t.Fatalf("stale schema must miss, ok=%v err=%v", ok, err)
	}
}
