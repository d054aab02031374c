package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/noise"
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
)

// Толщина земляного слоя под травой
const dirtDepth = 2

// ErrInvalidParameters – некорректные параметры генерации
var ErrInvalidParameters = errors.New("invalid generation parameters")

// GenerationParameters – фиксированная конфигурация ландшафта.
type GenerationParameters struct {
	Extent    int     // Блоки генерируются в [-Extent, Extent) по X и Z
	Amplitude int     // Максимальная высота над нулём
	Scale     float64 // Горизонтальная частота шума
}

// DefaultGenerationParameters возвращает параметры исходного ландшафта
func DefaultGenerationParameters() GenerationParameters {
	return GenerationParameters{Extent: 16, Amplitude: 10, Scale: 0.05}
}

// Validate проверяет параметры
func (p GenerationParameters) Validate() error {
	if p.Extent <= 0 {
		return fmt.Errorf("%w: extent=%d", ErrInvalidParameters, p.Extent)
	}
	if p.Amplitude < 0 {
		return fmt.Errorf("%w: amplitude=%d", ErrInvalidParameters, p.Amplitude)
	}
	if p.Scale <= 0 || math.IsNaN(p.Scale) || math.IsInf(p.Scale, 0) {
		return fmt.Errorf("%w: scale=%v", ErrInvalidParameters, p.Scale)
	}
	return nil
}

// WorldGenerator генерирует ландшафт мира. Собственного состояния не имеет.
type WorldGenerator struct {
	noise   noise.Sampler
	catalog *block.Catalog
	params  GenerationParameters
}

// NewWorldGenerator создаёт новый генератор мира
func NewWorldGenerator(sampler noise.Sampler, catalog *block.Catalog, params GenerationParameters) *WorldGenerator {
	return &WorldGenerator{
		noise:   sampler,
		catalog: catalog,
		params:  params,
	}
}

// Params возвращает параметры генерации
func (wg *WorldGenerator) Params() GenerationParameters {
	return wg.params
}

// ColumnHeight возвращает высоту столбца (x, z): шум [-1, 1] переводится в [0, amplitude].
func (wg *WorldGenerator) ColumnHeight(x, z int) int {
	n := wg.noise.Sample(float64(x)*wg.params.Scale, float64(z)*wg.params.Scale)
	return int(math.Floor((n + 1) * 0.5 * float64(wg.params.Amplitude)))
}

// Generate строит полный ландшафт. Хранилище собирается локально и
// отдаётся только целиком; при ошибке возвращается nil.
func (wg *WorldGenerator) Generate() (*TerrainStore, error) {
	if err := wg.params.Validate(); err != nil {
		return nil, err
	}

	// Все три слоя должны быть в каталоге до начала прохода
	layers := make(map[string]*block.Definition, 3)
	for _, id := range []string{block.GrassID, block.DirtID, block.StoneID} {
		def, err := wg.catalog.Get(id)
		if err != nil {
			return nil, fmt.Errorf("генерация ландшафта: %w", err)
		}
		layers[id] = def
	}

	store := NewTerrainStore()
	extent := wg.params.Extent

	for x := -extent; x < extent; x++ {
		for z := -extent; z < extent; z++ {
			height := wg.ColumnHeight(x, z)

			for y := 0; y <= height; y++ {
				def := layers[LayerFor(y, height)]
				if _, ok := store.Put(vec.Vec3{X: x, Y: y, Z: z}, def); !ok {
					return nil, fmt.Errorf("генерация ландшафта: позиция (%d,%d,%d) недопустима", x, y, z)
				}
			}
		}
	}

	logging.Info("🌍 Ландшафт сгенерирован: %d блоков, extent=%d amplitude=%d scale=%.3f",
		store.Len(), extent, wg.params.Amplitude, wg.params.Scale)

	return store, nil
}

// LayerFor возвращает ID типа блока для высоты y в столбце высотой height:
// трава сверху, два слоя земли под ней, ниже камень.
func LayerFor(y, height int) string {
	switch {
	case y == height:
		return block.GrassID
	case y > height-dirtDepth-1:
		return block.DirtID
	default:
		return block.StoneID
	}
}
