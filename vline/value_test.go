package vline

import "testing"

func TestValueTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Null, false},
		{NewNumber(NewBigNumInt(0)), false},
		{NewNumber(NewBigNumInt(1)), true},
		{NewString(""), false},
		{NewString("x"), true},
		{NewList(nil), false},
		{NewList([]Value{Null}), true},
		{NewObject(), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestValueCloneIsIndependent(t *testing.T) {
	original := NewList([]Value{NewNumber(NewBigNumInt(1))})
	clone := original.Clone()
	clone.List[0] = NewNumber(NewBigNumInt(99))
	if original.List[0].Number.Int64() != 1 {
		t.Fatalf("mutating a clone mutated the original list")
	}

	obj := NewObject()
	obj.Members["x"] = NewNumber(NewBigNumInt(1))
	objClone := obj.Clone()
	objClone.Members["x"] = NewNumber(NewBigNumInt(2))
	if obj.Members["x"].Number.Int64() != 1 {
		t.Fatalf("mutating a cloned object mutated the original")
	}
}

func TestValueEquals(t *testing.T) {
	if !NewString("a").Equals(NewString("a")) {
		t.Error("equal strings should compare equal")
	}
	if NewString("a").Equals(NewNumber(NewBigNumInt(0))) {
		t.Error("values of different kinds should never compare equal")
	}
	a := NewList([]Value{NewNumber(NewBigNumInt(1)), NewString("x")})
	b := NewList([]Value{NewNumber(NewBigNumInt(1)), NewString("x")})
	if !a.Equals(b) {
		t.Error("structurally equal lists should compare equal")
	}
}

func TestValueCompareRejectsMismatchedKinds(t *testing.T) {
	_, err := NewString("a").Compare(NewNumber(NewBigNumInt(1)))
	if err == nil {
		t.Fatal("expected a TypeError comparing string and number")
	}
}
