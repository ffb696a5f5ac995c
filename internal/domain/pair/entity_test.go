package pair

import (
	"errors"
	"testing"
)

func TestIndexValidate(t *testing.T) {
	if err := Index(0).Validate(); err != nil {
		t.Fatalf("index 0 rejected: %v", err)
	}
	if err := Index(42).Validate(); err != nil {
		t.Fatalf("index 42 rejected: %v", err)
	}
	if err := Index(-1).Validate(); !errors.Is(err, ErrNegativeIndex) {
		t.Fatalf("expected ErrNegativeIndex, got %v", err)
	}
}

func TestNeedsSeed(t *testing.T) {
	var missing *Pair
	if !missing.NeedsSeed() {
		t.Error("nil pair should need seeding")
	}
	if !(&Pair{Spanish: "hola"}).NeedsSeed() {
		t.Error("pair without english should need seeding")
	}
	if (&Pair{English: "hi"}).NeedsSeed() {
		t.Error("pair with english should not need seeding")
	}
}
