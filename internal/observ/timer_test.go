package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	time.Sleep(time.Millisecond)
	tm.End(idx, "1 file")

	idx = tm.Begin("check")
	tm.End(idx, "")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Note != "1 file" {
		t.Fatalf("unexpected first phase: %+v", report.Phases[0])
	}
	if report.Phases[0].DurationMS <= 0 {
		t.Fatalf("parse duration should be positive, got %f", report.Phases[0].DurationMS)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("total %f < first phase %f", report.TotalMS, report.Phases[0].DurationMS)
	}
}

func TestTimerEmptyReport(t *testing.T) {
	tm := NewTimer()
	report := tm.Report()
	if report.TotalMS != 0 || len(report.Phases) != 0 {
		t.Fatalf("empty timer should produce empty report, got %+v", report)
	}
}

func TestTimerEndIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(-1, "")
	tm.End(5, "")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("bad End index must not add phases")
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("check")
	tm.End(idx, "note text")

	out := tm.Summary()
	if !strings.Contains(out, "check") {
		t.Fatalf("summary missing phase name: %q", out)
	}
	if !strings.Contains(out, "note text") {
		t.Fatalf("summary missing note: %q", out)
	}
	if !strings.Contains(out, "total") {
		t.Fatalf("summary missing total line: %q", out)
	}
}
