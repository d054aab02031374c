package world

import (
	"math"
	"testing"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
	"github.com/stretchr/testify/assert"
)

func singleBlockStore(t *testing.T, pos vec.Vec3) *TerrainStore {
	t.Helper()
	s := NewTerrainStore()
	if _, ok := s.Put(pos, block.DefaultCatalog().MustGet(block.StoneID)); !ok {
		t.Fatalf("не удалось поставить блок в %v", pos)
	}
	return s
}

func TestRules_EmptyStoreRejectsEverything(t *testing.T) {
	r := DefaultRules()
	s := NewTerrainStore()
	player := vec.Vec3Float{}

	for x := -2; x <= 2; x++ {
		for y := -2; y <= 2; y++ {
			for z := -2; z <= 2; z++ {
				target := vec.Vec3{X: x, Y: y, Z: z}.ToFloat()
				assert.False(t, r.CanPlace(target, s, player), "пустой мир принял %v", target)
				assert.Equal(t, RejectUnsupported, r.CheckPlace(target, s, player))
			}
		}
	}
}

func TestRules_SupportRequirement(t *testing.T) {
	r := DefaultRules()
	s := singleBlockStore(t, vec.Vec3{})
	player := vec.Vec3Float{X: 2, Y: 2, Z: 2}

	assert.True(t, r.CanPlace(vec.Vec3Float{X: 0, Y: 1, Z: 0}, s, player))

	// (5,5,5) в пределах высоты и дальности от игрока, но без соседей
	far := vec.Vec3Float{X: 5, Y: 5, Z: 5}
	player = vec.Vec3Float{X: 3, Y: 3, Z: 3}
	assert.LessOrEqual(t, far.DistanceTo(player), MaxReachDistance)
	assert.False(t, r.CanPlace(far, s, player))
	assert.Equal(t, RejectUnsupported, r.CheckPlace(far, s, player))

	// Все шесть осевых соседей считаются опорой
	player = vec.Vec3Float{}
	for _, n := range (vec.Vec3{}).Neighbors() {
		assert.True(t, r.CanPlace(n.ToFloat(), s, player), "сосед %v", n)
	}
	// Диагональ опорой не является
	assert.False(t, r.CanPlace(vec.Vec3Float{X: 1, Y: 1, Z: 0}, s, player))
}

func TestRules_Occupied(t *testing.T) {
	r := DefaultRules()
	s := singleBlockStore(t, vec.Vec3{})
	s.Put(vec.Vec3{Y: 1}, block.DefaultCatalog().MustGet(block.DirtID))

	assert.Equal(t, RejectOccupied, r.CheckPlace(vec.Vec3Float{}, s, vec.Vec3Float{X: 1}))
	// Дробная цель привязывается к той же клетке
	assert.Equal(t, RejectOccupied, r.CheckPlace(vec.Vec3Float{X: 0.3, Y: -0.2, Z: 0.49}, s, vec.Vec3Float{X: 1}))
}

func TestRules_ReachBoundary(t *testing.T) {
	r := DefaultRules()
	s := singleBlockStore(t, vec.Vec3{})
	target := vec.Vec3Float{X: 0, Y: 1, Z: 0}

	exact := vec.Vec3Float{X: 5, Y: 1, Z: 0}
	assert.Equal(t, 5.0, target.DistanceTo(exact))
	assert.True(t, r.CanPlace(target, s, exact))
	assert.True(t, r.CanRemove(target, exact))

	beyond := vec.Vec3Float{X: 5.0001, Y: 1, Z: 0}
	assert.False(t, r.CanPlace(target, s, beyond))
	assert.Equal(t, RejectOutOfReach, r.CheckPlace(target, s, beyond))
	assert.False(t, r.CanRemove(target, beyond))
	assert.Equal(t, RejectOutOfReach, r.CheckRemove(target, beyond))
}

func TestRules_NonFinitePlayerOutOfReach(t *testing.T) {
	r := DefaultRules()
	s := singleBlockStore(t, vec.Vec3{})
	target := vec.Vec3Float{X: 0, Y: 1, Z: 0}

	players := []vec.Vec3Float{
		{X: math.NaN()},
		{X: 0, Y: math.NaN(), Z: 0},
		{X: math.Inf(1), Y: 1},
		{X: 0, Y: 1, Z: math.Inf(-1)},
	}
	for _, p := range players {
		assert.Equal(t, RejectOutOfReach, r.CheckPlace(target, s, p), "игрок %v", p)
		assert.False(t, r.CanPlace(target, s, p))
		assert.Equal(t, RejectOutOfReach, r.CheckRemove(vec.Vec3Float{}, p), "игрок %v", p)
		assert.False(t, r.CanRemove(vec.Vec3Float{X: 1000}, p))
	}
}

func TestRules_HeightBoundary(t *testing.T) {
	r := DefaultRules()

	cases := []struct {
		y       int
		allowed bool
	}{
		{256, true},
		{257, false},
		{-64, true},
		{-65, false},
	}

	for _, c := range cases {
		// Опорный блок прямо под/над целью, игрок рядом
		support := vec.Vec3{Y: c.y - 1}
		if c.y < 0 {
			support = vec.Vec3{Y: c.y + 1}
		}
		s := singleBlockStore(t, support)
		player := vec.Vec3Float{X: 1, Y: float64(c.y), Z: 0}
		target := vec.Vec3Float{Y: float64(c.y)}

		assert.Equal(t, c.allowed, r.CanPlace(target, s, player), "y=%d", c.y)
		if !c.allowed {
			assert.Equal(t, RejectOutOfBounds, r.CheckPlace(target, s, player))
		}
	}
}

func TestRules_RemoveIgnoresSupportAndOccupancy(t *testing.T) {
	r := DefaultRules()
	// Удаление проверяет только дальность – даже пустая клетка проходит
	assert.True(t, r.CanRemove(vec.Vec3Float{X: 1, Y: 1, Z: 1}, vec.Vec3Float{}))
}

func TestRules_CustomBand(t *testing.T) {
	r := Rules{MinHeight: 0, MaxHeight: 10, MaxReach: 2}
	s := singleBlockStore(t, vec.Vec3{Y: 10})

	assert.Equal(t, RejectOutOfBounds, r.CheckPlace(vec.Vec3Float{Y: 11}, s, vec.Vec3Float{Y: 10}))
	assert.Equal(t, RejectOutOfReach, r.CheckPlace(vec.Vec3Float{Y: 9}, s, vec.Vec3Float{Y: 6}))
	assert.Equal(t, RejectNone, r.CheckPlace(vec.Vec3Float{Y: 9}, s, vec.Vec3Float{Y: 8}))
}
