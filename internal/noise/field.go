// Package noise содержит генераторы когерентного 2D-шума для карты высот.
package noise

import (
	"math"
	"math/rand"
	"time"
)

// Sampler – источник когерентного шума. Значения лежат в [-1, 1],
// один и тот же вход всегда даёт один и тот же выход.
type Sampler interface {
	Sample(x, y float64) float64
}

// Field – градиентный шум Перлина на таблице перестановок из 256 элементов.
// Таблица продублирована до 512, чтобы индекс X+1 / A+1 не требовал заворота.
// После создания не изменяется, поэтому безопасен для параллельного чтения.
type Field struct {
	perm [512]uint8
}

// NewField перемешивает таблицу перестановок (Фишер–Йетс) с помощью rng.
func NewField(rng *rand.Rand) *Field {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	for i := 255; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return NewFieldFromPermutation(p)
}

// NewSeededField создаёт детерминированное поле: одинаковый сид – одинаковая таблица.
func NewSeededField(seed int64) *Field {
	return NewField(rand.New(rand.NewSource(seed)))
}

// NewRandomField создаёт поле со случайной таблицей
func NewRandomField() *Field {
	return NewSeededField(time.Now().UnixNano())
}

// NewFieldFromPermutation строит поле по готовой таблице.
// Таблица должна быть перестановкой 0..255, это не проверяется.
func NewFieldFromPermutation(p [256]uint8) *Field {
	f := &Field{}
	copy(f.perm[:256], p[:])
	copy(f.perm[256:], p[:])
	return f
}

// Permutation возвращает исходную таблицу (первые 256 элементов)
func (f *Field) Permutation() [256]uint8 {
	var p [256]uint8
	copy(p[:], f.perm[:256])
	return p
}

// Sample вычисляет значение шума в точке (x, y).
func (f *Field) Sample(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)

	xi := int(fx) & 255
	yi := int(fy) & 255

	x -= fx
	y -= fy

	u := fade(x)
	v := fade(y)

	a := int(f.perm[xi]) + yi
	b := int(f.perm[xi+1]) + yi

	n := lerp(
		lerp(grad(f.perm[a], x, y), grad(f.perm[b], x-1, y), u),
		lerp(grad(f.perm[a+1], x, y-1), grad(f.perm[b+1], x-1, y-1), u),
		v,
	)
	return clamp(n)
}

// fade – квинтик 6t^5 - 15t^4 + 10t^3, даёт C2-гладкость на границах ячеек
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad выбирает градиент по младшим 4 битам хэша и возвращает скалярное произведение.
func grad(hash uint8, x, y float64) float64 {
	h := hash & 15

	u := y
	if h < 8 {
		u = x
	}

	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	}

	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func clamp(n float64) float64 {
	if n > 1 {
		return 1
	}
	if n < -1 {
		return -1
	}
	return n
}
