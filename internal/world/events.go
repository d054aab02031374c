package world

import (
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
)

// Operation – вид действия игрока над миром
type Operation string

const (
	OperationPlace  Operation = "place"
	OperationRemove Operation = "remove"
)

// Result – исход действия
type Result string

const (
	ResultAccepted Result = "accepted"
	ResultRejected Result = "rejected"
)

// EventType определяет тип события исхода
type EventType string

const (
	EventPlacementAccepted EventType = "placement-accepted"
	EventPlacementRejected EventType = "placement-rejected"
	EventRemovalAccepted   EventType = "removal-accepted"
	EventRemovalRejected   EventType = "removal-rejected"
)

// Outcome – событие для слоёв звука и отрисовки.
// Ядро не вызывает их напрямую: оно только публикует исходы.
type Outcome struct {
	Outcome   Result              `json:"outcome"`
	Operation Operation           `json:"operation"`
	Sound     block.SoundCategory `json:"soundCategory,omitempty"`
	Position  vec.Vec3            `json:"position"`
	BlockType string              `json:"blockType,omitempty"`
	Reason    Rejection           `json:"reason,omitempty"`
}

// Accepted сообщает, был ли мир изменён
func (o Outcome) Accepted() bool {
	return o.Outcome == ResultAccepted
}

// Type возвращает тип события
func (o Outcome) Type() EventType {
	switch {
	case o.Operation == OperationPlace && o.Accepted():
		return EventPlacementAccepted
	case o.Operation == OperationPlace:
		return EventPlacementRejected
	case o.Accepted():
		return EventRemovalAccepted
	default:
		return EventRemovalRejected
	}
}

// SoundCue возвращает имя звука: place_<category>, break_<category> или error.
func (o Outcome) SoundCue() string {
	if !o.Accepted() || o.Sound == block.SoundError || o.Sound == "" {
		return "error"
	}
	if o.Operation == OperationPlace {
		return "place_" + string(o.Sound)
	}
	return "break_" + string(o.Sound)
}

// OutcomeSink потребляет исходы. Вызывается синхронно из движка,
// поэтому реализация не должна блокироваться надолго.
type OutcomeSink interface {
	Emit(Outcome)
}

// SinkFunc адаптирует функцию к OutcomeSink
type SinkFunc func(Outcome)

// Emit вызывает функцию
func (f SinkFunc) Emit(o Outcome) { f(o) }

// MultiSink рассылает исход по всем приёмникам по порядку.
type MultiSink []OutcomeSink

// Emit реализует OutcomeSink
func (m MultiSink) Emit(o Outcome) {
	for _, s := range m {
		if s != nil {
			s.Emit(o)
		}
	}
}

// Recorder запоминает все исходы (для тестов и отладки).
type Recorder struct {
	Outcomes []Outcome
}

// Emit реализует OutcomeSink
func (r *Recorder) Emit(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Last возвращает последний исход
func (r *Recorder) Last() (Outcome, bool) {
	if len(r.Outcomes) == 0 {
		return Outcome{}, false
	}
	return r.Outcomes[len(r.Outcomes)-1], true
}

// Reset очищает список
func (r *Recorder) Reset() {
	r.Outcomes = nil
}
