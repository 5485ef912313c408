package path

import (
	"errors"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		p, q Path
		want int
	}{
		{New(0), New(0), 0},
		{New(0), New(1), -1},
		{New(1), New(0), 1},
		{New(0), New(0, 1), -1},
		{New(0, 1), New(0), 1},
		{New(0, 5), New(1), -1},
		{Root(), New(0), -1},
		{New(2, 0, 3), New(2, 0, 3), 0},
	}

	for _, tt := range tests {
		if got := Compare(tt.p, tt.q); got != tt.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tt.p, tt.q, got, tt.want)
		}
	}
}

func TestOrderIsTotal(t *testing.T) {
	paths := []Path{Root(), New(0), New(0, 0), New(0, 1), New(0, 1, 2), New(1), New(1, 0), New(2)}

	for i, p := range paths {
		for j, q := range paths {
			before, after := IsBefore(p, q), IsAfter(p, q)
			if i == j {
				if before || after {
					t.Errorf("%s should be neither before nor after itself", p)
				}
				continue
			}
			if before == after {
				t.Errorf("exactly one of IsBefore/IsAfter should hold for %s, %s", p, q)
			}
			if IsAncestor(p, q) && !before {
				t.Errorf("ancestor %s should be before %s", p, q)
			}
			// paths are listed in document order
			if (i < j) != before {
				t.Errorf("IsBefore(%s, %s) = %v", p, q, before)
			}
		}
	}
}

func TestIsAncestor(t *testing.T) {
	tests := []struct {
		p, q Path
		want bool
	}{
		{Root(), New(0), true},
		{New(0), New(0, 1), true},
		{New(0), New(0), false},
		{New(0, 1), New(0), false},
		{New(1), New(0, 1), false},
	}

	for _, tt := range tests {
		if got := IsAncestor(tt.p, tt.q); got != tt.want {
			t.Errorf("IsAncestor(%s, %s) = %v, want %v", tt.p, tt.q, got, tt.want)
		}
	}
}

func TestRelative(t *testing.T) {
	rel, err := Relative(New(1, 2, 3), New(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(rel, New(2, 3)) {
		t.Errorf("expected [2 3], got %s", rel)
	}

	rel, err = Relative(New(1, 2), New(1, 2))
	if err != nil || len(rel) != 0 {
		t.Errorf("relative to self should be root, got %s (%v)", rel, err)
	}

	_, err = Relative(New(1, 2), New(0))
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
	var pathErr *InvalidPathError
	if !errors.As(err, &pathErr) || pathErr.Op != "relative" {
		t.Errorf("expected InvalidPathError for relative, got %v", err)
	}
}

func TestIncrementDecrement(t *testing.T) {
	p := New(1, 2, 3)

	inc, err := Increment(p, 1, 2)
	if err != nil || !Equal(inc, New(1, 2, 4)) {
		t.Errorf("Increment = %s (%v), want [1 2 4]", inc, err)
	}
	inc, err = Increment(p, 2, 0)
	if err != nil || !Equal(inc, New(3, 2, 3)) {
		t.Errorf("Increment = %s (%v), want [3 2 3]", inc, err)
	}
	if !Equal(p, New(1, 2, 3)) {
		t.Error("input path should be unchanged")
	}

	dec, err := Decrement(p, 1, 1)
	if err != nil || !Equal(dec, New(1, 1, 3)) {
		t.Errorf("Decrement = %s (%v), want [1 1 3]", dec, err)
	}

	if _, err := Decrement(p, 2, 0); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("negative index should fail, got %v", err)
	}
	if _, err := Increment(p, 1, 3); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("out of range depth should fail, got %v", err)
	}
}

func TestCommon(t *testing.T) {
	tests := []struct {
		p, q, want Path
	}{
		{New(0, 1, 2), New(0, 1, 5), New(0, 1)},
		{New(0), New(1), Root()},
		{New(3, 4), New(3, 4), New(3, 4)},
		{New(3), New(3, 4, 5), New(3)},
	}

	for _, tt := range tests {
		if got := Common(tt.p, tt.q); !Equal(got, tt.want) {
			t.Errorf("Common(%s, %s) = %s, want %s", tt.p, tt.q, got, tt.want)
		}
	}
}

func TestSiblings(t *testing.T) {
	next, err := New(0, 1).Next()
	if err != nil || !Equal(next, New(0, 2)) {
		t.Errorf("Next = %s (%v)", next, err)
	}
	prev, err := New(0, 1).Previous()
	if err != nil || !Equal(prev, New(0, 0)) {
		t.Errorf("Previous = %s (%v)", prev, err)
	}
	if _, err := New(0, 0).Previous(); err == nil {
		t.Error("Previous of first child should fail")
	}
	if _, err := Root().Parent(); err == nil {
		t.Error("root has no parent")
	}
	if !IsSibling(New(0, 1), New(0, 3)) || IsSibling(New(0, 1), New(1, 1)) {
		t.Error("IsSibling mismatch")
	}
}

func TestTransformRemove(t *testing.T) {
	tests := []struct {
		p, removed Path
		want       Path
		ok         bool
	}{
		{New(0, 2), New(0, 1), New(0, 1), true},
		{New(0, 2, 4), New(0, 1), New(0, 1, 4), true},
		{New(0, 0), New(0, 1), New(0, 0), true},
		{New(0, 1, 3), New(0, 1), nil, false},
		{New(0, 1), New(0, 1), nil, false},
		{New(1, 0), New(0, 1), New(1, 0), true},
	}

	for _, tt := range tests {
		got, ok := TransformRemove(tt.p, tt.removed)
		if ok != tt.ok || !Equal(got, tt.want) {
			t.Errorf("TransformRemove(%s, %s) = %s, %v; want %s, %v", tt.p, tt.removed, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTransformInsert(t *testing.T) {
	tests := []struct {
		p, inserted, want Path
	}{
		{New(0, 1), New(0, 1), New(0, 2)},
		{New(0, 1, 2), New(0, 0), New(0, 2, 2)},
		{New(0, 1), New(0, 2), New(0, 1)},
		{New(1, 1), New(0, 0), New(1, 1)},
		{New(0), New(0, 0), New(0)},
	}

	for _, tt := range tests {
		if got := TransformInsert(tt.p, tt.inserted); !Equal(got, tt.want) {
			t.Errorf("TransformInsert(%s, %s) = %s, want %s", tt.p, tt.inserted, got, tt.want)
		}
	}
}
