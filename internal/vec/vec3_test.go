package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Float_Round(t *testing.T) {
	cases := []struct {
		in   Vec3Float
		want Vec3
	}{
		{Vec3Float{0.4, 0.5, -0.5}, Vec3{0, 1, 0}},
		{Vec3Float{-1.5, -2.5, 2.5}, Vec3{-1, -2, 3}},
		{Vec3Float{1.49, -1.51, 2.999}, Vec3{1, -2, 3}},
		{Vec3Float{-0.4, 0, 7}, Vec3{0, 0, 7}},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.in.Round(), "округление %v", c.in)
	}
}

func TestVec3_Neighbors(t *testing.T) {
	origin := Vec3{X: 1, Y: 2, Z: 3}
	n := origin.Neighbors()

	seen := make(map[Vec3]struct{}, len(n))
	for _, p := range n {
		// Каждый сосед отличается ровно на единицу по одной оси
		assert.InDelta(t, 1.0, p.DistanceTo(origin), 1e-12)
		seen[p] = struct{}{}
	}
	assert.Len(t, seen, 6, "соседи должны быть уникальны")
	assert.Contains(t, seen, Vec3{X: 1, Y: 1, Z: 3})
	assert.Contains(t, seen, Vec3{X: 1, Y: 2, Z: 4})
}

func TestVec3Float_DistanceTo(t *testing.T) {
	a := Vec3Float{X: 0, Y: 0, Z: 0}
	b := Vec3Float{X: 3, Y: 4, Z: 0}
	assert.Equal(t, 5.0, a.DistanceTo(b))
	assert.Equal(t, 5.0, b.DistanceTo(a))
}
