package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/world"
	"github.com/google/uuid"
)

// Типы событий исходов
const (
	EventTypePlace  = "world.place"
	EventTypeRemove = "world.remove"

	// OutcomeSchemaVersion – версия схемы полезной нагрузки Outcome
	OutcomeSchemaVersion = 1
)

// EventTypeFor возвращает тип события для операции
func EventTypeFor(op world.Operation) string {
	if op == world.OperationRemove {
		return EventTypeRemove
	}
	return EventTypePlace
}

// OutcomePublisher публикует исходы движка в шину. Реализует world.OutcomeSink.
type OutcomePublisher struct {
	bus     EventBus
	source  string
	codec   *Codec
	timeout time.Duration
}

// PublisherOption настраивает OutcomePublisher
type PublisherOption func(*OutcomePublisher)

// WithCompression включает сжатие полезной нагрузки
func WithCompression(c *Codec) PublisherOption {
	return func(p *OutcomePublisher) { p.codec = c }
}

// DefaultPublishTimeout ограничивает ожидание места в заполненной шине.
// Emit вызывается синхронно внутри операции движка.
const DefaultPublishTimeout = 50 * time.Millisecond

// WithPublishTimeout ограничивает ожидание места в шине
func WithPublishTimeout(d time.Duration) PublisherOption {
	return func(p *OutcomePublisher) { p.timeout = d }
}

// NewOutcomePublisher создаёт publisher для указанной шины
func NewOutcomePublisher(bus EventBus, source string, opts ...PublisherOption) *OutcomePublisher {
	p := &OutcomePublisher{bus: bus, source: source, timeout: DefaultPublishTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Envelope упаковывает исход в событие шины
func (p *OutcomePublisher) Envelope(o world.Outcome) (*Envelope, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("encode outcome: %w", err)
	}

	encoding := EncodingJSON
	if p.codec != nil {
		data = p.codec.Compress(data)
		encoding = EncodingZstdJSON
	}

	// Изменения мира важнее отказов: их не отбрасываем при переполнении
	priority := 1
	if o.Accepted() {
		priority = HighPriority
	}

	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    p.source,
		EventType: EventTypeFor(o.Operation),
		Version:   OutcomeSchemaVersion,
		Priority:  priority,
		Payload:   data,
		Metadata: map[string]string{
			MetaEncoding: encoding,
			"outcome":    string(o.Outcome),
			"soundCue":   o.SoundCue(),
		},
	}, nil
}

// Emit реализует world.OutcomeSink. Ошибки шины только логируются:
// движок не должен зависеть от доступности транспорта.
func (p *OutcomePublisher) Emit(o world.Outcome) {
	ev, err := p.Envelope(o)
	if err != nil {
		logging.Error("OutcomePublisher: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.bus.Publish(ctx, ev); err != nil {
		logging.Warn("OutcomePublisher: не удалось опубликовать %s %s: %v", ev.EventType, ev.ID, err)
	}
}

// DecodeOutcome извлекает исход из события шины
func DecodeOutcome(ev *Envelope) (world.Outcome, error) {
	return DecodeOutcomeWith(ev, nil)
}

// DecodeOutcomeWith использует переданный кодек для сжатых событий
func DecodeOutcomeWith(ev *Envelope, c *Codec) (world.Outcome, error) {
	var o world.Outcome
	if !strings.HasPrefix(ev.EventType, "world.") {
		return o, fmt.Errorf("событие %s не является исходом", ev.EventType)
	}
	if ev.Version != OutcomeSchemaVersion {
		return o, fmt.Errorf("неподдерживаемая версия схемы %d", ev.Version)
	}

	data, err := payload(ev, c)
	if err != nil {
		return o, err
	}
	if err := json.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("decode outcome: %w", err)
	}
	return o, nil
}
