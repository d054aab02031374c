package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
// Все значения по умолчанию задаются в Default(); YAML только перекрывает их.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Server    ServerConfig    `yaml:"server"`
	EventBus  EventBusConfig  `yaml:"eventbus"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WorldConfig – границы строительства, дальность действия и параметры генерации.
type WorldConfig struct {
	MinHeight int         `yaml:"min_height"` // нижняя граница по Y, включительно
	MaxHeight int         `yaml:"max_height"` // верхняя граница по Y, включительно
	MaxReach  float64     `yaml:"max_reach"`  // максимальное расстояние до цели
	Extent    int         `yaml:"extent"`     // генерация в [-extent, extent) по X и Z
	Amplitude int         `yaml:"amplitude"`  // максимальная высота рельефа
	Scale     float64     `yaml:"scale"`      // горизонтальная частота шума
	Noise     NoiseConfig `yaml:"noise"`
}

// NoiseConfig выбирает генератор шума.
type NoiseConfig struct {
	Kind    string  `yaml:"kind"` // gradient | octave
	Seed    int64   `yaml:"seed"` // 0 – случайный
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Octaves int32   `yaml:"octaves"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

type EventBusConfig struct {
	Kind      string `yaml:"kind"` // memory | jetstream | none
	Buffer    int    `yaml:"buffer"`
	URL       string `yaml:"url"`
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	Compress  bool   `yaml:"use_zstd_compression"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type LoggingConfig struct {
	Directory string `yaml:"directory"` // пусто – только консоль
	Level     string `yaml:"level"`
}

// Значения по умолчанию
const (
	DefaultMinHeight = -64
	DefaultMaxHeight = 256
	DefaultMaxReach  = 5.0
	DefaultExtent    = 16
	DefaultAmplitude = 10
	DefaultScale     = 0.05
	DefaultRESTPort  = 8088
)

// ErrInvalidConfig возвращается Validate при некорректных значениях
var ErrInvalidConfig = errors.New("invalid config")

// Default возвращает конфигурацию с документированными значениями по умолчанию.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			MinHeight: DefaultMinHeight,
			MaxHeight: DefaultMaxHeight,
			MaxReach:  DefaultMaxReach,
			Extent:    DefaultExtent,
			Amplitude: DefaultAmplitude,
			Scale:     DefaultScale,
			Noise: NoiseConfig{
				Kind:    "gradient",
				Alpha:   2.0,
				Beta:    2.0,
				Octaves: 3,
			},
		},
		Server: ServerConfig{},
		EventBus: EventBusConfig{
			Kind:      "memory",
			Buffer:    1024,
			URL:       "nats://127.0.0.1:4222",
			Stream:    "WORLD",
			Retention: 24,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "blockworld",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// GetRESTPort возвращает REST порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "BLOCKWORLD_REST_PORT", DefaultRESTPort)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет согласованность значений.
func (c *Config) Validate() error {
	w := c.World
	switch {
	case w.MinHeight > w.MaxHeight:
		return fmt.Errorf("%w: world.min_height (%d) больше world.max_height (%d)", ErrInvalidConfig, w.MinHeight, w.MaxHeight)
	case w.MaxReach <= 0:
		return fmt.Errorf("%w: world.max_reach должен быть положительным", ErrInvalidConfig)
	case w.Extent <= 0:
		return fmt.Errorf("%w: world.extent должен быть положительным", ErrInvalidConfig)
	case w.Amplitude < 0:
		return fmt.Errorf("%w: world.amplitude не может быть отрицательным", ErrInvalidConfig)
	case w.Scale <= 0:
		return fmt.Errorf("%w: world.scale должен быть положительным", ErrInvalidConfig)
	}

	switch w.Noise.Kind {
	case "", "gradient", "octave":
	default:
		return fmt.Errorf("%w: неизвестный world.noise.kind %q", ErrInvalidConfig, w.Noise.Kind)
	}

	switch c.EventBus.Kind {
	case "", "memory", "jetstream", "none":
	default:
		return fmt.Errorf("%w: неизвестный eventbus.kind %q", ErrInvalidConfig, c.EventBus.Kind)
	}

	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV BLOCKWORLD_CONFIG,
// а при его отсутствии возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("BLOCKWORLD_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан, используем дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse разбирает YAML в cfg и проверяет результат.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}
