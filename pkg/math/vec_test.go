package math

import (
	"testing"
)

func TestVec3Add(t *testing.T) {
	got := V3(1, 2, 3).Add(V3(3, 4, 5))
	want := Vec3{4, 6, 8}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	got := V3(3, 4, 0).Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	l := V3(3, 4, 12).Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3Cross(t *testing.T) {
	got := V3(1, 0, 0).Cross(V3(0, 1, 0))
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Perpendicular(t *testing.T) {
	for _, v := range []Vec3{V3(1, 0, 0), V3(0, 1, 0), V3(1, 1, 1), V3(-100, 100, 0)} {
		p := v.Perpendicular()
		if d := p.Dot(v.Normalize()); d > 1e-5 || d < -1e-5 {
			t.Errorf("Perpendicular(%v) = %v, dot %v", v, p, d)
		}
	}
}
