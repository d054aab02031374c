package world

import (
	"fmt"
	"time"

	"github.com/annel0/blockworld/internal/config"
	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/noise"
	"github.com/annel0/blockworld/internal/world/block"
)

// RulesFromConfig переносит границы и дальность из конфигурации
func RulesFromConfig(cfg config.WorldConfig) Rules {
	return Rules{
		MinHeight: cfg.MinHeight,
		MaxHeight: cfg.MaxHeight,
		MaxReach:  cfg.MaxReach,
	}
}

// ParamsFromConfig переносит параметры генерации из конфигурации
func ParamsFromConfig(cfg config.WorldConfig) GenerationParameters {
	return GenerationParameters{
		Extent:    cfg.Extent,
		Amplitude: cfg.Amplitude,
		Scale:     cfg.Scale,
	}
}

// NoiseOptionsFromConfig переносит выбор генератора шума из конфигурации
func NoiseOptionsFromConfig(cfg config.NoiseConfig) noise.Options {
	return noise.Options{
		Kind:    noise.Kind(cfg.Kind),
		Seed:    cfg.Seed,
		Alpha:   cfg.Alpha,
		Beta:    cfg.Beta,
		Octaves: cfg.Octaves,
	}
}

// NewFromConfig генерирует исходный ландшафт и создаёт движок над ним.
// Если sampler == nil, генератор шума создаётся по cfg.Noise.
func NewFromConfig(cfg config.WorldConfig, catalog *block.Catalog, sampler noise.Sampler, sinks ...OutcomeSink) (*WorldEngine, error) {
	if sampler == nil {
		var err error
		sampler, err = noise.New(NoiseOptionsFromConfig(cfg.Noise))
		if err != nil {
			return nil, err
		}
	}

	start := time.Now()
	store, err := NewWorldGenerator(sampler, catalog, ParamsFromConfig(cfg)).Generate()
	if err != nil {
		return nil, fmt.Errorf("создание мира: %w", err)
	}
	logging.Debug("Генерация заняла %s", time.Since(start))

	return NewWorldEngine(catalog, RulesFromConfig(cfg), store, sinks...), nil
}
