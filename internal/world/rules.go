package world

import (
	"github.com/annel0/blockworld/internal/vec"
)

// Rejection – причина отказа в изменении мира. RejectNone означает разрешение.
type Rejection string

const (
	RejectNone         Rejection = ""
	RejectOutOfBounds  Rejection = "out_of_bounds"
	RejectOutOfReach   Rejection = "out_of_reach"
	RejectOccupied     Rejection = "occupied"
	RejectUnsupported  Rejection = "unsupported"
	RejectNotPlaceable Rejection = "not_placeable"
	RejectEmpty        Rejection = "empty"
)

// Константы правил по умолчанию
const (
	MinBuildHeight   = -64
	MaxBuildHeight   = 256
	MaxReachDistance = 5.0
)

// Rules – чистые проверки установки и удаления блоков.
// Не имеют побочных эффектов и не хранят состояние мира.
type Rules struct {
	MinHeight int     // нижняя граница Y, включительно
	MaxHeight int     // верхняя граница Y, включительно
	MaxReach  float64 // расстояние до игрока, включительно
}

// DefaultRules возвращает правила с границами [-64, 256] и дальностью 5
func DefaultRules() Rules {
	return Rules{
		MinHeight: MinBuildHeight,
		MaxHeight: MaxBuildHeight,
		MaxReach:  MaxReachDistance,
	}
}

// CheckPlace возвращает первую нарушенную проверку для установки блока.
// Цель привязывается к решётке до любых проверок; дальность считается
// от непрерывной позиции игрока до привязанной цели.
func (r Rules) CheckPlace(target vec.Vec3Float, store *TerrainStore, player vec.Vec3Float) Rejection {
	pos := target.Round()

	if pos.Y < r.MinHeight || pos.Y > r.MaxHeight || !InKeyRange(pos) {
		return RejectOutOfBounds
	}

	// NaN в позиции игрока не должен проходить проверку дальности
	if !(pos.ToFloat().DistanceTo(player) <= r.MaxReach) {
		return RejectOutOfReach
	}

	if store.Has(pos) {
		return RejectOccupied
	}

	// Опора: хотя бы один занятый сосед по осям. Пустой мир отклоняет всё.
	for _, n := range pos.Neighbors() {
		if store.Has(n) {
			return RejectNone
		}
	}
	return RejectUnsupported
}

// CanPlace сообщает, можно ли поставить блок в target
func (r Rules) CanPlace(target vec.Vec3Float, store *TerrainStore, player vec.Vec3Float) bool {
	return r.CheckPlace(target, store, player) == RejectNone
}

// CheckRemove проверяет только дальность. Опору соседей удаление не проверяет:
// блоки могут остаться висеть, обрушения нет.
func (r Rules) CheckRemove(blockPos vec.Vec3Float, player vec.Vec3Float) Rejection {
	if !(blockPos.DistanceTo(player) <= r.MaxReach) {
		return RejectOutOfReach
	}
	return RejectNone
}

// CanRemove сообщает, достаёт ли игрок до блока
func (r Rules) CanRemove(blockPos vec.Vec3Float, player vec.Vec3Float) bool {
	return r.CheckRemove(blockPos, player) == RejectNone
}
