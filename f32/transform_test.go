// SPDX-License-Identifier: Unlicense OR MIT

package f32

import (
	"math"
	"testing"
)

func close(a, b Point) bool {
	const tol = 1e-4
	return math.Abs(float64(a.X-b.X)) < tol && math.Abs(float64(a.Y-b.Y)) < tol
}

func TestIdentityTransform(t *testing.T) {
	p := Pt(3, -4)
	if got := Identity.Transform(p); got != p {
		t.Errorf("identity transform mismatch: have %v, want %v", got, p)
	}
}

func TestFromScale(t *testing.T) {
	tr := FromScale(Pt(2, 3))
	got := tr.Transform(Pt(1, 1))
	want := Pt(2, 3)
	if !close(got, want) {
		t.Errorf("scale mismatch: have %v, want %v", got, want)
	}
}

func TestPostMulAppliesReceiverThenOther(t *testing.T) {
	a := Transform2D{M11: 1, M22: 1, M31: 5, M32: 0}
	b := FromScale(Pt(2, 2))
	p := Pt(1, 1)

	viaMethods := a.PostMul(b).Transform(p)
	viaChain := b.Transform(a.Transform(p))
	if !close(viaMethods, viaChain) {
		t.Errorf("PostMul mismatch: have %v, want %v", viaMethods, viaChain)
	}
}

func TestPreMulIsReversedPostMul(t *testing.T) {
	a := FromScale(Pt(2, 1))
	b := Transform2D{M11: 1, M22: 1, M31: 1, M32: 1}
	p := Pt(3, 4)

	pre := a.PreMul(b).Transform(p)
	post := b.PostMul(a).Transform(p)
	if !close(pre, post) {
		t.Errorf("PreMul/PostMul mismatch: have %v, want %v", pre, post)
	}
}
