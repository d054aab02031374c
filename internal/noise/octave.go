package noise

import (
	"fmt"
	"time"

	"github.com/aquilax/go-perlin"
)

// Kind – тип генератора шума, выбирается конфигурацией.
type Kind string

const (
	KindGradient Kind = "gradient" // однооктавный Perlin, поведение по умолчанию
	KindOctave   Kind = "octave"   // многооктавный шум go-perlin
)

// Octave – многооктавный шум на базе github.com/aquilax/go-perlin.
type Octave struct {
	p *perlin.Perlin
}

// NewOctave создаёт генератор.
// alpha – сглаживание (вес каждой следующей октавы 1/alpha),
// beta – множитель частоты, octaves – количество октав.
func NewOctave(alpha, beta float64, octaves int32, seed int64) *Octave {
	return &Octave{p: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// Sample возвращает значение шума, ограниченное диапазоном [-1, 1]
func (o *Octave) Sample(x, y float64) float64 {
	return clamp(o.p.Noise2D(x, y))
}

// Options описывает выбор и параметры генератора шума.
type Options struct {
	Kind    Kind
	Seed    int64 // 0 – случайный сид
	Alpha   float64
	Beta    float64
	Octaves int32
}

// New создаёт генератор по опциям. Пустой Kind означает KindGradient.
func New(opts Options) (Sampler, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	switch opts.Kind {
	case "", KindGradient:
		return NewSeededField(seed), nil
	case KindOctave:
		if opts.Octaves <= 0 || opts.Alpha <= 0 || opts.Beta <= 0 {
			return nil, fmt.Errorf("noise: некорректные параметры октав alpha=%v beta=%v octaves=%d",
				opts.Alpha, opts.Beta, opts.Octaves)
		}
		return NewOctave(opts.Alpha, opts.Beta, opts.Octaves, seed), nil
	default:
		return nil, fmt.Errorf("noise: неизвестный тип генератора %q", opts.Kind)
	}
}
