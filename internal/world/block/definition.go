package block

import (
	"fmt"
	"math"
)

// SoundCategory – звуковая категория блока, которую потребляет слой представления.
type SoundCategory string

const (
	SoundSoft  SoundCategory = "soft"
	SoundHard  SoundCategory = "hard"
	SoundMetal SoundCategory = "metal"
	// SoundError не принадлежит ни одному блоку: им помечаются отказы.
	SoundError SoundCategory = "error"
)

// Valid проверяет, что категория допустима для определения блока
func (s SoundCategory) Valid() bool {
	switch s {
	case SoundSoft, SoundHard, SoundMetal:
		return true
	}
	return false
}

// Идентификаторы встроенных блоков
const (
	GrassID = "grass"
	DirtID  = "dirt"
	StoneID = "stone"
	GlassID = "glass"
	MetalID = "metal"
)

// Definition описывает тип блока. После загрузки каталога не изменяется.
type Definition struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Texture     string        `json:"texture"`
	Hardness    float64       `json:"hardness"` // Пока не используется механиками добычи
	Transparent bool          `json:"transparent"`
	Placeable   bool          `json:"placeable"`
	Sound       SoundCategory `json:"sound"`
}

// Validate проверяет обязательные поля определения
func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: пустой ID", ErrInvalidDefinition)
	}
	if !(d.Hardness > 0) || math.IsInf(d.Hardness, 1) {
		return fmt.Errorf("%w: %q: hardness должна быть положительной, получено %v", ErrInvalidDefinition, d.ID, d.Hardness)
	}
	if !d.Sound.Valid() {
		return fmt.Errorf("%w: %q: неизвестная звуковая категория %q", ErrInvalidDefinition, d.ID, d.Sound)
	}
	return nil
}

// Builtin возвращает пять встроенных определений.
// Значения – доменные константы, на них опирается UI выбора блоков.
func Builtin() []Definition {
	return []Definition{
		{
			ID:          GrassID,
			Name:        "Grass Block",
			Texture:     "/textures/grass.png",
			Hardness:    0.6,
			Transparent: false,
			Placeable:   true,
			Sound:       SoundSoft,
		},
		{
			ID:          DirtID,
			Name:        "Dirt",
			Texture:     "/textures/dirt.png",
			Hardness:    0.5,
			Transparent: false,
			Placeable:   true,
			Sound:       SoundSoft,
		},
		{
			ID:          StoneID,
			Name:        "Stone",
			Texture:     "/textures/stone.png",
			Hardness:    1.5,
			Transparent: false,
			Placeable:   true,
			Sound:       SoundHard,
		},
		{
			ID:          GlassID,
			Name:        "Glass",
			Texture:     "/textures/glass.png",
			Hardness:    0.3,
			Transparent: true,
			Placeable:   true,
			Sound:       SoundHard,
		},
		{
			ID:          MetalID,
			Name:        "Metal Block",
			Texture:     "/textures/metal.png",
			Hardness:    2.0,
			Transparent: false,
			Placeable:   true,
			Sound:       SoundMetal,
		},
	}
}
