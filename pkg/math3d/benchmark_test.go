package math3d

import (
	"testing"
)

func BenchmarkMat3Mul(b *testing.B) {
	m1 := RotateY3(0.5)
	m2 := RotateX3(0.25)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat3MulVec3(b *testing.B) {
	m := RotateY3(0.5).Mul(RotateX3(0.25))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkMat3Inverse(b *testing.B) {
	m := Mat3FromCols(V3(-0.1, 0.2, -1), V3(1, 0, 0.5), V3(0, 1, 0.25))

	for b.Loop() {
		_, _ = m.Inverse()
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Dot(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Dot(v2)
	}
}
