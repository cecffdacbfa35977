package world

import (
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/aquilax/go-perlin"
)

// Константы высот для генерации (доля от амплитуды)
const (
	ShallowWaterMax = 0.30 // Ниже - песок под водой
	MountainStart   = 0.80 // Выше - камень и снег
)

// Generator строит рельеф по карте высот из шума Перлина
type Generator struct {
	Seed       int64
	NoiseScale float64 // Масштаб шума (сглаженность рельефа)
	BaseY      int     // Нижняя граница мира (бедрок)
	Amplitude  int     // Перепад высот над SeaLevel
	SeaLevel   int

	noise *perlin.Perlin
}

// NewGenerator создаёт генератор с параметрами по умолчанию
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Seed:       seed,
		NoiseScale: 0.05,
		BaseY:      0,
		Amplitude:  24,
		SeaLevel:   56,
		noise:      perlin.NewPerlin(2.0, 2.0, 3, seed),
	}
}

// level возвращает высоту колонки в диапазоне [0, 1]
func (g *Generator) level(x, z int) float64 {
	v := (g.noise.Noise2D(float64(x)*g.NoiseScale, float64(z)*g.NoiseScale) + 1.0) / 2.0
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Height возвращает Y верхней твёрдой клетки колонки
func (g *Generator) Height(x, z int) int {
	return g.SeaLevel - g.Amplitude/2 + int(g.level(x, z)*float64(g.Amplitude))
}

// Fill заполняет колонки [min, max] по X и Z (Y игнорируется)
func (g *Generator) Fill(w *Memory, min, max vec.Vec3) {
	for x := min.X; x <= max.X; x++ {
		for z := min.Z; z <= max.Z; z++ {
			g.fillColumn(w, x, z)
		}
	}
}

func (g *Generator) fillColumn(w *Memory, x, z int) {
	top := g.Height(x, z)
	lvl := g.level(x, z)

	surface, filler := block.GrassBlockID, block.DirtBlockID
	switch {
	case lvl < ShallowWaterMax:
		surface, filler = block.SandBlockID, block.SandBlockID
	case lvl > MountainStart:
		surface, filler = block.SnowBlockID, block.StoneBlockID
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.setLocked(vec.Vec3{X: x, Y: g.BaseY, Z: z}, block.Of(block.BedrockBlockID))
	for y := g.BaseY + 1; y <= top; y++ {
		id := block.StoneBlockID
		switch {
		case y == top:
			id = surface
		case y > top-4:
			id = filler
		}
		w.setLocked(vec.Vec3{X: x, Y: y, Z: z}, block.Of(id))
	}
	for y := top + 1; y <= g.SeaLevel; y++ {
		w.setLocked(vec.Vec3{X: x, Y: y, Z: z}, block.Of(block.WaterBlockID))
	}
}
