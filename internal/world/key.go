package world

import "github.com/annel0/blockworld/internal/vec"

// BlockKey – упакованная позиция блока: по 21 биту на ось в дополнительном коде.
// X занимает биты 0..20, Y – 21..41, Z – 42..62.
type BlockKey uint64

const (
	keyBits = 21
	keyMask = 1<<keyBits - 1

	// KeyMin и KeyMax – допустимый диапазон каждой координаты
	KeyMin = -(1 << (keyBits - 1))
	KeyMax = 1<<(keyBits-1) - 1
)

// InKeyRange сообщает, помещается ли позиция в BlockKey без потерь.
func InKeyRange(p vec.Vec3) bool {
	return inAxis(p.X) && inAxis(p.Y) && inAxis(p.Z)
}

func inAxis(v int) bool {
	return v >= KeyMin && v <= KeyMax
}

// KeyOf упаковывает позицию. Для позиций вне InKeyRange результат не определён.
func KeyOf(p vec.Vec3) BlockKey {
	return BlockKey(uint64(p.X)&keyMask |
		(uint64(p.Y)&keyMask)<<keyBits |
		(uint64(p.Z)&keyMask)<<(2*keyBits))
}

// Pos распаковывает ключ обратно в позицию (со знаковым расширением).
func (k BlockKey) Pos() vec.Vec3 {
	u := uint64(k)
	return vec.Vec3{
		X: int(int64(u<<(64-keyBits)) >> (64 - keyBits)),
		Y: int(int64(u<<(64-2*keyBits)) >> (64 - keyBits)),
		Z: int(int64(u<<(64-3*keyBits)) >> (64 - keyBits)),
	}
}
