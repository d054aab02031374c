package block

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownBlockType возвращается при обращении к отсутствующему в каталоге типу.
	// Для закрытого каталога это ошибка вызывающего кода, а не игровая ситуация.
	ErrUnknownBlockType = errors.New("unknown block type")
	// ErrDuplicateBlockType – два определения с одинаковым ID.
	ErrDuplicateBlockType = errors.New("duplicate block type")
	// ErrInvalidDefinition – определение не прошло проверку.
	ErrInvalidDefinition = errors.New("invalid block definition")
)

// Catalog – неизменяемый реестр типов блоков.
// Создаётся один раз при старте и передаётся потребителям явно.
type Catalog struct {
	defs  map[string]*Definition
	order []*Definition
}

// NewCatalog собирает каталог из определений, сохраняя порядок их перечисления.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{
		defs:  make(map[string]*Definition, len(defs)),
		order: make([]*Definition, 0, len(defs)),
	}

	for i := range defs {
		def := defs[i]
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.defs[def.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBlockType, def.ID)
		}
		c.defs[def.ID] = &def
		c.order = append(c.order, &def)
	}

	return c, nil
}

// DefaultCatalog возвращает каталог из пяти встроенных блоков.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(Builtin()...)
	if err != nil {
		// Встроенные определения статичны, ошибка здесь – баг в Builtin()
		panic(fmt.Sprintf("встроенный каталог блоков некорректен: %v", err))
	}
	return c
}

// Get возвращает определение по ID или ErrUnknownBlockType.
func (c *Catalog) Get(id string) (*Definition, error) {
	def, ok := c.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, id)
	}
	return def, nil
}

// MustGet как Get, но паникует при промахе.
func (c *Catalog) MustGet(id string) *Definition {
	def, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return def
}

// Has сообщает, есть ли тип в каталоге
func (c *Catalog) Has(id string) bool {
	_, ok := c.defs[id]
	return ok
}

// All возвращает все определения в порядке регистрации.
func (c *Catalog) All() []*Definition {
	out := make([]*Definition, len(c.order))
	copy(out, c.order)
	return out
}

// Placeable возвращает только те типы, которые игрок может ставить.
func (c *Catalog) Placeable() []*Definition {
	out := make([]*Definition, 0, len(c.order))
	for _, def := range c.order {
		if def.Placeable {
			out = append(out, def)
		}
	}
	return out
}

// Len возвращает количество типов
func (c *Catalog) Len() int {
	return len(c.order)
}
