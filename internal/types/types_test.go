package types

import (
	"testing"
)

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern(MakeBorrowed(KindInt))
	b := in.Intern(MakeBorrowed(KindInt))
	if a != b {
		t.Fatalf("structurally equal types got different IDs: %d vs %d", a, b)
	}
	if a == in.Builtins().Int {
		t.Fatal("borrowed int must differ from owned int")
	}
}

func TestStripOwnership(t *testing.T) {
	in := NewInterner()
	refMut := in.Intern(MakeBorrowedMut(KindString))
	if got := in.StripOwnership(refMut); got != in.Builtins().String {
		t.Fatalf("strip of refmut string = %d, want builtin string %d", got, in.Builtins().String)
	}
}

func TestOwnershipQueries(t *testing.T) {
	if !MakeOwned(KindInt).TransfersOwnership() {
		t.Error("owned must transfer")
	}
	if !MakeBorrowed(KindInt).IsSharedBorrow() {
		t.Error("ref must be a shared borrow")
	}
	if !MakeBorrowedMut(KindInt).IsExclusiveBorrow() {
		t.Error("refmut must be an exclusive borrow")
	}
	if MakeShared(KindInt).TransfersOwnership() {
		t.Error("shared must not transfer")
	}
}

func TestPassModeNarrowing(t *testing.T) {
	owned := MakeOwned(KindInt)
	ref := MakeBorrowed(KindInt)
	refMut := MakeBorrowedMut(KindInt)
	shared := MakeShared(KindInt)

	cases := []struct {
		arg, param Type
		want       PassMode
	}{
		{owned, owned, PassMove},
		{owned, ref, PassBorrow},
		{owned, refMut, PassBorrowMut},
		{ref, ref, PassByValue},
		{refMut, refMut, PassByValue},
		{shared, shared, PassByValue},
		{ref, owned, PassIncompatible},
		{refMut, ref, PassIncompatible},
		{shared, owned, PassIncompatible},
		{owned, shared, PassIncompatible},
		{MakeOwned(KindString), owned, PassIncompatible}, // base mismatch
	}
	for _, c := range cases {
		if got := PassModeFor(c.arg, c.param); got != c.want {
			t.Errorf("PassModeFor(%v, %v) = %v, want %v", c.arg, c.param, got, c.want)
		}
	}
}
