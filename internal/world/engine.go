package world

import (
	"fmt"

	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
)

// WorldEngine применяет действия игрока к миру по правилам и публикует исходы.
// Кроме хранилища собственного состояния не имеет.
//
// Движок однопоточный и нереентерабельный: хост должен вызывать его
// методы последовательно.
type WorldEngine struct {
	catalog *block.Catalog
	rules   Rules
	store   *TerrainStore
	sink    MultiSink
}

// NewWorldEngine создаёт движок над готовым хранилищем.
func NewWorldEngine(catalog *block.Catalog, rules Rules, store *TerrainStore, sinks ...OutcomeSink) *WorldEngine {
	if store == nil {
		store = NewTerrainStore()
	}
	return &WorldEngine{
		catalog: catalog,
		rules:   rules,
		store:   store,
		sink:    MultiSink(sinks),
	}
}

// AddSink подключает ещё один приёмник исходов
func (e *WorldEngine) AddSink(s OutcomeSink) {
	e.sink = append(e.sink, s)
}

// PlaceBlock ставит блок blockTypeID в target от имени игрока в player.
//
// Отказ по правилам – обычный исход (placement-rejected), а не ошибка.
// Ошибка возвращается только для типа вне каталога: состояние при этом
// не меняется и событие не публикуется.
func (e *WorldEngine) PlaceBlock(target vec.Vec3Float, blockTypeID string, player vec.Vec3Float) (Outcome, error) {
	def, err := e.catalog.Get(blockTypeID)
	if err != nil {
		return Outcome{}, fmt.Errorf("установка блока: %w", err)
	}

	pos := target.Round()
	out := Outcome{
		Operation: OperationPlace,
		Position:  pos,
		BlockType: def.ID,
	}

	reason := RejectNotPlaceable
	if def.Placeable {
		reason = e.rules.CheckPlace(pos.ToFloat(), e.store, player)
	}

	if reason == RejectNone {
		if _, ok := e.store.Put(pos, def); !ok {
			// Правила уже проверили занятость, сюда попадать не должны
			reason = RejectOccupied
		}
	}

	if reason != RejectNone {
		out.Outcome = ResultRejected
		out.Sound = block.SoundError
		out.Reason = reason
		logging.Debug("Установка %s в %v отклонена: %s (игрок %v)", def.ID, pos, reason, player)
	} else {
		out.Outcome = ResultAccepted
		out.Sound = def.Sound
		logging.Debug("Установлен %s в %v", def.ID, pos)
	}

	e.sink.Emit(out)
	return out, nil
}

// RemoveBlock удаляет блок в blockPos от имени игрока в player.
// Дальность считается до привязанной к решётке позиции блока.
func (e *WorldEngine) RemoveBlock(blockPos vec.Vec3Float, player vec.Vec3Float) Outcome {
	pos := blockPos.Round()
	out := Outcome{
		Operation: OperationRemove,
		Position:  pos,
	}

	reason := e.rules.CheckRemove(pos.ToFloat(), player)
	if reason == RejectNone {
		removed, ok := e.store.Delete(pos)
		if ok {
			out.Outcome = ResultAccepted
			out.Sound = removed.Type.Sound
			out.BlockType = removed.TypeID()
			logging.Debug("Удалён %s в %v", out.BlockType, pos)
		} else {
			// Удалять нечего: нет блока, звук которого можно было бы передать
			reason = RejectEmpty
		}
	}

	if reason != RejectNone {
		out.Outcome = ResultRejected
		out.Sound = block.SoundError
		out.Reason = reason
		logging.Debug("Удаление в %v отклонено: %s (игрок %v)", pos, reason, player)
	}

	e.sink.Emit(out)
	return out
}

// QueryBlock возвращает блок в позиции без публикации событий.
func (e *WorldEngine) QueryBlock(pos vec.Vec3Float) (PlacedBlock, bool) {
	return e.store.Get(pos.Round())
}

// BlockCount возвращает количество блоков в мире
func (e *WorldEngine) BlockCount() int {
	return e.store.Len()
}

// Store возвращает хранилище мира
func (e *WorldEngine) Store() *TerrainStore {
	return e.store
}

// Catalog возвращает каталог блоков
func (e *WorldEngine) Catalog() *block.Catalog {
	return e.catalog
}

// Rules возвращает действующие правила
func (e *WorldEngine) Rules() Rules {
	return e.rules
}
