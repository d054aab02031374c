package world

import "github.com/annel0/blockworld/internal/vec"

// PickHit – результат луча от камеры, пересёкшего существующий блок.
// Вычисляется хостом; ядро только переводит его в цель действия.
type PickHit struct {
	Point  vec.Vec3Float `json:"point"`  // точка пересечения
	Normal vec.Vec3Float `json:"normal"` // нормаль грани
	Block  vec.Vec3      `json:"block"`  // позиция пересечённого блока
}

// PlacementTarget возвращает клетку рядом с гранью: point + 0.5*normal, привязанную к решётке.
func PlacementTarget(hit PickHit) vec.Vec3 {
	return hit.Point.Add(hit.Normal.Mul(0.5)).Round()
}

// RemovalTarget возвращает позицию самого пересечённого блока
func RemovalTarget(hit PickHit) vec.Vec3 {
	return hit.Block
}
