package world

import (
	"sort"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
)

// PlacedBlock – блок, стоящий в мире. Тип хранится ссылкой на определение каталога.
type PlacedBlock struct {
	Pos  vec.Vec3
	Type *block.Definition
}

// TypeID возвращает идентификатор типа блока
func (b PlacedBlock) TypeID() string {
	if b.Type == nil {
		return ""
	}
	return b.Type.ID
}

// TerrainStore – единственный источник истины о геометрии мира:
// не более одного блока на позицию.
//
// Хранилище не синхронизировано. Хост, работающий из нескольких горутин,
// обязан сериализовать доступ снаружи.
type TerrainStore struct {
	blocks map[BlockKey]PlacedBlock
}

// NewTerrainStore создаёт пустое хранилище
func NewTerrainStore() *TerrainStore {
	return &TerrainStore{blocks: make(map[BlockKey]PlacedBlock)}
}

// Get возвращает блок в позиции
func (s *TerrainStore) Get(pos vec.Vec3) (PlacedBlock, bool) {
	if !InKeyRange(pos) {
		return PlacedBlock{}, false
	}
	b, ok := s.blocks[KeyOf(pos)]
	return b, ok
}

// Has сообщает, занята ли позиция
func (s *TerrainStore) Has(pos vec.Vec3) bool {
	_, ok := s.Get(pos)
	return ok
}

// Put ставит блок, только если позиция свободна и помещается в ключ.
// Возвращает false, если вставка не выполнена.
func (s *TerrainStore) Put(pos vec.Vec3, def *block.Definition) (PlacedBlock, bool) {
	if def == nil || !InKeyRange(pos) {
		return PlacedBlock{}, false
	}
	key := KeyOf(pos)
	if existing, ok := s.blocks[key]; ok {
		return existing, false
	}
	b := PlacedBlock{Pos: pos, Type: def}
	s.blocks[key] = b
	return b, true
}

// Delete удаляет блок и возвращает его
func (s *TerrainStore) Delete(pos vec.Vec3) (PlacedBlock, bool) {
	if !InKeyRange(pos) {
		return PlacedBlock{}, false
	}
	key := KeyOf(pos)
	b, ok := s.blocks[key]
	if ok {
		delete(s.blocks, key)
	}
	return b, ok
}

// Len возвращает количество блоков
func (s *TerrainStore) Len() int {
	return len(s.blocks)
}

// Each обходит блоки в произвольном порядке; fn возвращает false для остановки.
func (s *TerrainStore) Each(fn func(PlacedBlock) bool) {
	for _, b := range s.blocks {
		if !fn(b) {
			return
		}
	}
}

// Positions возвращает занятые позиции, отсортированные по (X, Z, Y).
func (s *TerrainStore) Positions() []vec.Vec3 {
	out := make([]vec.Vec3, 0, len(s.blocks))
	for key := range s.blocks {
		out = append(out, key.Pos())
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.Y < b.Y
	})
	return out
}

// Column возвращает блоки столбца (x, z), отсортированные по Y.
func (s *TerrainStore) Column(x, z int) []PlacedBlock {
	var out []PlacedBlock
	for _, b := range s.blocks {
		if b.Pos.X == x && b.Pos.Z == z {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos.Y < out[j].Pos.Y })
	return out
}

// Clone создаёт независимую копию хранилища (определения блоков общие).
func (s *TerrainStore) Clone() *TerrainStore {
	c := &TerrainStore{blocks: make(map[BlockKey]PlacedBlock, len(s.blocks))}
	for k, v := range s.blocks {
		c.blocks[k] = v
	}
	return c
}
