package geometry

import "testing"

func TestRectFromLTWH(t *testing.T) {
	r := RectFromLTWH(10, 20, 100, 50)
	if r.Width() != 100 {
		t.Errorf("Width() = %v, want 100", r.Width())
	}
	if r.Height() != 50 {
		t.Errorf("Height() = %v, want 50", r.Height())
	}
	if r.Right != 110 || r.Bottom != 70 {
		t.Errorf("unexpected corners: %+v", r)
	}
}

func TestRectCenter(t *testing.T) {
	r := RectFromLTWH(0, 0, 100, 40)
	c := r.Center()
	if c.X != 50 || c.Y != 20 {
		t.Errorf("Center() = %+v, want (50, 20)", c)
	}
}

func TestRectTranslate(t *testing.T) {
	r := RectFromLTWH(5, 5, 10, 10).Translate(15, -5)
	want := RectFromLTWH(20, 0, 10, 10)
	if !r.Equal(want) {
		t.Errorf("Translate() = %+v, want %+v", r, want)
	}
}

func TestRectIsEmpty(t *testing.T) {
	if RectFromLTWH(0, 0, 10, 10).IsEmpty() {
		t.Error("non-degenerate rect reported empty")
	}
	if !RectFromLTWH(0, 0, 0, 10).IsEmpty() {
		t.Error("zero-width rect not reported empty")
	}
}

func TestOffsetDistance(t *testing.T) {
	a := Offset{X: 0, Y: 0}
	b := Offset{X: 3, Y: 4}
	if got := a.Distance(b); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestOffsetAddSub(t *testing.T) {
	a := Offset{X: 1, Y: 2}
	b := Offset{X: 3, Y: -1}
	if got := a.Add(b); got != (Offset{X: 4, Y: 1}) {
		t.Errorf("Add() = %+v", got)
	}
	if got := b.Sub(a); got != (Offset{X: 2, Y: -3}) {
		t.Errorf("Sub() = %+v", got)
	}
}
