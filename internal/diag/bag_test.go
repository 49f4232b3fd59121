package diag

import (
	"testing"

	"aether/internal/source"
)

func TestBagRespectsCap(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(OwnUseAfterMove, source.Span{}, "a")) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(NewError(OwnUseAfterMove, source.Span{}, "b")) {
		t.Fatal("second add rejected")
	}
	if bag.Add(NewError(OwnUseAfterMove, source.Span{}, "c")) {
		t.Fatal("cap exceeded")
	}
	if bag.Len() != 2 {
		t.Fatalf("len = %d", bag.Len())
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	bag := NewBag(8)
	bag.Add(New(SevWarning, SemaInfo, source.Span{File: 1, Start: 30, End: 31}, "later"))
	bag.Add(NewError(OwnBorrowConflict, source.Span{File: 1, Start: 10, End: 12}, "earlier"))
	bag.Add(NewError(OwnUseAfterMove, source.Span{File: 0, Start: 99, End: 100}, "other file"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "other file" || items[1].Message != "earlier" || items[2].Message != "later" {
		t.Fatalf("unexpected order: %q %q %q", items[0].Message, items[1].Message, items[2].Message)
	}
}

func TestDedupReporterSuppressesRepeats(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})
	span := source.Span{File: 1, Start: 5, End: 6}
	r.Report(OwnUseAfterMove, SevError, span, "use of moved value 'x'", nil)
	r.Report(OwnUseAfterMove, SevError, span, "use of moved value 'x'", nil)
	r.Report(OwnUseAfterMove, SevError, span, "use of moved value 'y'", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestCodeIDBlocks(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:       "LEX1001",
		SynUnexpectedToken:   "SYN2001",
		SemaUndeclaredVariable: "SEM3003",
		OwnUseAfterMove:      "OWN3100",
		IOError:              "IO4000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
