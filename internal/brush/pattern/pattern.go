// Package pattern назначает содержимое принятым клеткам.
package pattern

import (
	"errors"
	"math/rand"

	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
)

// ErrEmptyPalette возвращается при попытке построить шаблон на пустой палитре
var ErrEmptyPalette = errors.New("pattern: empty palette")

// Pattern определяет содержимое для принятой клетки.
// Второй результат false означает, что шаблон намеренно ничего не ставит в этой позиции.
type Pattern interface {
	Apply(pos vec.Vec3) (block.Content, bool)
}

// randomPattern выбирает элемент палитры равновероятно
type randomPattern struct {
	palette []block.Content
	rng     *rand.Rand
}

// NewRandom создаёт шаблон случайного выбора из палитры
func NewRandom(palette []block.Content, rng *rand.Rand) (Pattern, error) {
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	return &randomPattern{palette: palette, rng: rng}, nil
}

func (p *randomPattern) Apply(vec.Vec3) (block.Content, bool) {
	return pick(p.palette, p.rng), true
}

func pick(palette []block.Content, rng *rand.Rand) block.Content {
	if len(palette) == 1 {
		return palette[0]
	}
	return palette[rng.Intn(len(palette))]
}
