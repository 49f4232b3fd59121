package token

import "testing"

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if k.String() == "Kind(?)" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"fn":      KwFn,
		"let-mut": KwLetMut,
		"ref-mut": KwRefMut,
		"shared":  KwShared,
	}
	for text, want := range cases {
		got, ok := LookupKeyword(text)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = %v, %v; want %v", text, got, ok, want)
		}
	}
	if _, ok := LookupKeyword("Fn"); ok {
		t.Error("keywords must be case sensitive")
	}
	if _, ok := LookupKeyword("frobnicate"); ok {
		t.Error("unexpected keyword")
	}
}
