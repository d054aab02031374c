package world

import (
	"testing"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockKey_RoundTrip(t *testing.T) {
	positions := []vec.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: -1, Y: -1, Z: -1},
		{X: 16, Y: -64, Z: -16},
		{X: KeyMax, Y: KeyMin, Z: 12345},
		{X: KeyMin, Y: KeyMax, Z: -54321},
	}

	seen := make(map[BlockKey]vec.Vec3)
	for _, p := range positions {
		require.True(t, InKeyRange(p))
		k := KeyOf(p)
		assert.Equal(t, p, k.Pos(), "распаковка %v", p)

		if other, dup := seen[k]; dup {
			t.Fatalf("ключ %d совпал для %v и %v", k, p, other)
		}
		seen[k] = p
	}

	assert.False(t, InKeyRange(vec.Vec3{X: KeyMax + 1}))
	assert.False(t, InKeyRange(vec.Vec3{Z: KeyMin - 1}))
}

func TestTerrainStore_PutGetDelete(t *testing.T) {
	catalog := block.DefaultCatalog()
	stone := catalog.MustGet(block.StoneID)
	glass := catalog.MustGet(block.GlassID)
	s := NewTerrainStore()

	pos := vec.Vec3{X: 1, Y: 2, Z: -3}
	placed, ok := s.Put(pos, stone)
	require.True(t, ok)
	assert.Equal(t, pos, placed.Pos)
	assert.Equal(t, block.StoneID, placed.TypeID())

	// Повторная вставка в ту же позицию не перезаписывает блок
	existing, ok := s.Put(pos, glass)
	assert.False(t, ok)
	assert.Equal(t, block.StoneID, existing.TypeID())
	assert.Equal(t, 1, s.Len())

	got, ok := s.Get(pos)
	require.True(t, ok)
	assert.Same(t, stone, got.Type)

	removed, ok := s.Delete(pos)
	require.True(t, ok)
	assert.Equal(t, block.StoneID, removed.TypeID())
	assert.False(t, s.Has(pos))
	assert.Equal(t, 0, s.Len())

	_, ok = s.Delete(pos)
	assert.False(t, ok)
}

func TestTerrainStore_RejectsOutOfRangeAndNil(t *testing.T) {
	s := NewTerrainStore()
	stone := block.DefaultCatalog().MustGet(block.StoneID)

	_, ok := s.Put(vec.Vec3{X: KeyMax + 1}, stone)
	assert.False(t, ok)
	_, ok = s.Put(vec.Vec3{}, nil)
	assert.False(t, ok)
	assert.False(t, s.Has(vec.Vec3{X: KeyMax + 1}))
	assert.Equal(t, 0, s.Len())
}

func TestTerrainStore_UniquenessUnderMixedOperations(t *testing.T) {
	catalog := block.DefaultCatalog()
	s := NewTerrainStore()
	defs := catalog.All()

	// Псевдослучайная последовательность вставок и удалений на маленькой решётке
	for i := 0; i < 500; i++ {
		p := vec.Vec3{X: i % 3, Y: (i / 3) % 3, Z: (i * 7) % 3}
		if i%4 == 3 {
			s.Delete(p)
		} else {
			s.Put(p, defs[i%len(defs)])
		}
	}

	positions := s.Positions()
	seen := make(map[vec.Vec3]struct{}, len(positions))
	for _, p := range positions {
		_, dup := seen[p]
		require.False(t, dup, "позиция %v встречается дважды", p)
		seen[p] = struct{}{}
	}
	assert.Equal(t, s.Len(), len(positions))
}

func TestTerrainStore_ColumnAndClone(t *testing.T) {
	stone := block.DefaultCatalog().MustGet(block.StoneID)
	s := NewTerrainStore()
	for _, y := range []int{3, 0, 2} {
		s.Put(vec.Vec3{X: 4, Y: y, Z: 4}, stone)
	}
	s.Put(vec.Vec3{X: 5, Y: 0, Z: 4}, stone)

	col := s.Column(4, 4)
	require.Len(t, col, 3)
	assert.Equal(t, []int{0, 2, 3}, []int{col[0].Pos.Y, col[1].Pos.Y, col[2].Pos.Y})

	c := s.Clone()
	c.Delete(vec.Vec3{X: 4, Y: 0, Z: 4})
	assert.Equal(t, 4, s.Len(), "клон не должен влиять на оригинал")
	assert.Equal(t, 3, c.Len())

	count := 0
	s.Each(func(PlacedBlock) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count, "Each должен останавливаться по false")
}
