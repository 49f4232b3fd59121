package sema

import (
	"testing"

	"aether/internal/diag"
	"aether/internal/ownership"
)

func TestAssignToImmutable(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn main () unit
    (let x int 5)
    (assign x 6)
    (return)))
`)
	expectCodes(t, fx, diag.OwnAssignToImmutable)
	d := fx.bag.Items()[0]
	if len(d.Notes) == 0 {
		t.Fatal("want a note pointing at the immutable declaration")
	}
}

func TestAssignWhileBorrowed(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn main () unit
    (let-mut x int 5)
    (let r (ref int) (ref x))
    (assign x 6)
    (return)))
`)
	expectCodes(t, fx, diag.OwnUseWhileBorrowed)
}

func TestMoveWhileBorrowed(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn consume ((v string)) unit (return))
  (fn main () unit
    (let x string "a")
    (let r (ref string) (ref x))
    (consume x)
    (return)))
`)
	expectCodes(t, fx, diag.OwnMoveWhileBorrowed)
}

func TestMutBorrowOfImmutable(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn main () unit
    (let x int 5)
    (let mref (ref-mut int) (ref-mut x))
    (return)))
`)
	expectCodes(t, fx, diag.OwnMutBorrowOfImmutable)
}

// A direct read of an exclusively borrowed binding conflicts; reading
// through the reference does not.
func TestExclusiveBorrowFreezesDirectReads(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn main () unit
    (let-mut x int 5)
    (let mref (ref-mut int) (ref-mut x))
    (let y int (+ x 1))
    (return)))
`)
	expectCodes(t, fx, diag.OwnBorrowConflict)
}

func TestReadThroughExclusiveBorrow(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn main () unit
    (let-mut x int 5)
    (let mref (ref-mut int) (ref-mut x))
    (let y int (deref mref))
    (return)))
`)
	expectClean(t, fx)
}

// Block-scoped borrows end with the block; the binding is free again
// afterwards.
func TestBlockScopedBorrowRelease(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn main () unit
    (let-mut x int 5)
    (block
      (let r (ref int) (ref x)))
    (let mref (ref-mut int) (ref-mut x))
    (return)))
`)
	expectClean(t, fx)
}

// An implicit argument borrow lasts only for the call; the binding can
// be moved right after.
func TestCallArgumentBorrowReleasedAfterCall(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn peek ((r (ref string))) unit (return))
  (fn consume ((v string)) unit (return))
  (fn main () unit
    (let x string "a")
    (peek x)
    (consume x)
    (return)))
`)
	expectClean(t, fx)
}

func TestSharedOwnershipNeedsExplicitType(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn keep ((v (shared int))) unit (return))
  (fn main () unit
    (let x int 5)
    (keep x)
    (return)))
`)
	expectCodes(t, fx, diag.SemaSharedConversion)
}

func TestArgCountMismatch(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn consume ((v int)) unit (return))
  (fn main () unit
    (consume)
    (return)))
`)
	expectCodes(t, fx, diag.SemaArgCountMismatch)
}

func TestUnknownFunction(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn main () unit
    (missing 1)
    (return)))
`)
	expectCodes(t, fx, diag.SemaUnknownFunction)
}

func TestUndeclaredVariable(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn main () unit
    (let y int z)
    (return)))
`)
	expectCodes(t, fx, diag.SemaUndeclaredVariable)
}

func TestDuplicateFunction(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn f () unit (return))
  (fn f () unit (return)))
`)
	expectCodes(t, fx, diag.SemaDuplicateSymbol)
}

func TestDuplicateBindingInScope(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn main () unit
    (let x int 1)
    (let x int 2)
    (return)))
`)
	expectCodes(t, fx, diag.SemaDuplicateSymbol)
}

// Shadowing in a nested block scope is legal and leaves the outer
// binding intact.
func TestBlockShadowing(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn consume ((v int)) unit (return))
  (fn main () unit
    (let x int 1)
    (block
      (let x int 2)
      (consume x))
    (consume x)
    (return)))
`)
	expectClean(t, fx)
}

func TestLetTypeMismatch(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn main () unit
    (let x int "nope")
    (return)))
`)
	expectCodes(t, fx, diag.SemaTypeMismatch)
}

func TestPlanRecordsMoveAndDrop(t *testing.T) {
	fx := checkSource(t, `
(module m
  (fn consume ((v string)) unit (return))
  (fn main () unit
    (let kept string "stay")
    (let gone string "go")
    (consume gone)
    (return)))
`)
	expectClean(t, fx)

	moves, drops := 0, 0
	for _, plan := range fx.result.Plans {
		for _, ev := range plan.Events {
			switch ev.Kind {
			case ownership.EvMove:
				moves++
			case ownership.EvDrop:
				drops++
			}
		}
	}
	if moves != 1 {
		t.Fatalf("moves = %d, want 1", moves)
	}
	// kept in main plus the consumed value inside consume's own frame.
	if drops != 2 {
		t.Fatalf("drops = %d, want 2", drops)
	}
}
