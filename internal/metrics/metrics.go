// Package metrics экспортирует исходы движка мира в Prometheus.
package metrics

import (
	"time"

	"github.com/annel0/blockworld/internal/world"
	"github.com/prometheus/client_golang/prometheus"
)

// WorldCollector считает действия игроков и размер мира. Реализует world.OutcomeSink.
type WorldCollector struct {
	actions    *prometheus.CounterVec
	blocks     prometheus.Gauge
	generation prometheus.Histogram
}

// NewWorldCollector создаёт метрики и регистрирует их в reg
func NewWorldCollector(reg prometheus.Registerer) (*WorldCollector, error) {
	c := &WorldCollector{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockworld",
			Name:      "block_actions_total",
			Help:      "Число попыток поставить или удалить блок по исходу и причине отказа.",
		}, []string{"operation", "outcome", "reason"}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockworld",
			Name:      "blocks",
			Help:      "Текущее число блоков в мире.",
		}),
		generation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blockworld",
			Name:      "generation_duration_seconds",
			Help:      "Длительность генерации рельефа.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}

	for _, col := range []prometheus.Collector{c.actions, c.blocks, c.generation} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Emit реализует world.OutcomeSink
func (c *WorldCollector) Emit(o world.Outcome) {
	reason := string(o.Reason)
	if reason == "" {
		reason = "none"
	}
	c.actions.WithLabelValues(string(o.Operation), string(o.Outcome), reason).Inc()

	if !o.Accepted() {
		return
	}
	if o.Operation == world.OperationPlace {
		c.blocks.Inc()
	} else {
		c.blocks.Dec()
	}
}

// SetBlocks выставляет абсолютное значение (после генерации)
func (c *WorldCollector) SetBlocks(n int) {
	c.blocks.Set(float64(n))
}

// ObserveGeneration записывает длительность генерации
func (c *WorldCollector) ObserveGeneration(d time.Duration) {
	c.generation.Observe(d.Seconds())
}
