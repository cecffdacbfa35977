package settings

import (
	"sort"

	"github.com/annel0/gopaint/internal/world/block"
)

// Palette отображает номер слота в содержимое.
// Удаление слота не сдвигает остальные.
type Palette struct {
	slots map[int]block.Content
}

// NewPalette создаёт пустую палитру
func NewPalette() Palette {
	return Palette{slots: make(map[int]block.Content)}
}

// Set занимает слот, заменяя прежнее содержимое
func (p *Palette) Set(slot int, c block.Content) {
	if p.slots == nil {
		p.slots = make(map[int]block.Content)
	}
	p.slots[slot] = c
}

// Remove освобождает слот. Пустой слот игнорируется.
func (p *Palette) Remove(slot int) {
	delete(p.slots, slot)
}

// Get возвращает содержимое слота
func (p Palette) Get(slot int) (block.Content, bool) {
	c, ok := p.slots[slot]
	return c, ok
}

// Len возвращает число занятых слотов
func (p Palette) Len() int {
	return len(p.slots)
}

// Slots возвращает занятые слоты по возрастанию
func (p Palette) Slots() []int {
	out := make([]int, 0, len(p.slots))
	for s := range p.slots {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Blocks возвращает содержимое в порядке слотов
func (p Palette) Blocks() []block.Content {
	slots := p.Slots()
	out := make([]block.Content, len(slots))
	for i, s := range slots {
		out[i] = p.slots[s]
	}
	return out
}

// Clone возвращает независимую копию
func (p Palette) Clone() Palette {
	c := NewPalette()
	for s, b := range p.slots {
		c.slots[s] = b
	}
	return c
}
