package brush

import (
	"github.com/annel0/gopaint/internal/brush/pattern"
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
)

// NewSphere - сплошная сфера с затуханием
func NewSphere() Brush {
	return &spherePattern{
		name:        "Sphere Brush",
		description: "Paints a sphere with falloff",
		icon:        "gopaint:sphere_brush",
	}
}

// NewSpray - каждая клетка сферы принимается с вероятностью chance%
func NewSpray() Brush {
	return &spherePattern{
		name:        "Spray Brush",
		description: "Randomly paints cells of a sphere",
		icon:        "gopaint:spray_brush",
		accept:      chanceAccept,
	}
}

// NewSplatter - затухание, затем chance как общий множитель
func NewSplatter() Brush {
	return &spherePattern{
		name:        "Splatter Brush",
		description: "Falloff sphere thinned out by chance",
		icon:        "gopaint:splatter_brush",
		accept: func(st Stroke, pos vec.Vec3) bool {
			return falloffAccept(st, pos) && chanceAccept(st, pos)
		},
	}
}

// NewDisc - диск толщиной в одну клетку, перпендикулярный оси
func NewDisc() Brush {
	return &spherePattern{
		name:        "Disc Brush",
		description: "Paints a flat disc across the axis",
		icon:        "gopaint:disc_brush",
		shape:       discShape,
	}
}

// NewOverlay - только верхние thickness слоёв (воздух выше вдоль оси)
func NewOverlay() Brush {
	return &spherePattern{
		name:        "Overlay Brush",
		description: "Paints the top layers of a surface",
		icon:        "gopaint:overlay_brush",
		accept:      layerAccept(1),
	}
}

// NewUnderlay - только нижние thickness слоёв (воздух ниже вдоль оси)
func NewUnderlay() Brush {
	return &spherePattern{
		name:        "Underlay Brush",
		description: "Paints the bottom layers of a surface",
		icon:        "gopaint:underlay_brush",
		accept:      layerAccept(-1),
	}
}

// NewFracture - разреженные реплики на лучах от центра
func NewFracture() Brush {
	return &spherePattern{
		name:        "Fracture Brush",
		description: "Places regularly spaced replicas along fracture lines",
		icon:        "gopaint:fracture_brush",
		pattern: func(st Stroke, palette []block.Content) (pattern.Pattern, error) {
			s := st.Settings
			return pattern.NewFracture(pattern.FractureParams{
				Center:        st.Center,
				Axis:          s.Axis(),
				Size:          s.Size(),
				Distance:      s.FractureDistance(),
				AngleDistance: s.AngleDistance(),
				AngleHeight:   s.AngleHeightDifference(),
				Palette:       palette,
				Rand:          st.Rand,
			})
		},
	}
}

// NewGradient - палитра полосами вдоль оси с перемешиванием
func NewGradient() Brush {
	return &spherePattern{
		name:        "Gradient Brush",
		description: "Blends the palette along the axis",
		icon:        "gopaint:gradient_brush",
		pattern: func(st Stroke, palette []block.Content) (pattern.Pattern, error) {
			s := st.Settings
			return pattern.NewGradient(pattern.GradientParams{
				Center:  st.Center,
				Axis:    s.Axis(),
				Size:    s.Size(),
				Mixing:  s.MixingStrength(),
				Palette: palette,
				Rand:    st.Rand,
				Seed:    st.Rand.Int63(),
			})
		},
	}
}

// layerAccept принимает твёрдые клетки, у которых в пределах thickness клеток
// в направлении dir вдоль оси есть воздух, и затем применяет затухание.
func layerAccept(dir int) acceptFunc {
	return func(st Stroke, pos vec.Vec3) bool {
		if st.World.IsAir(pos) {
			return false
		}
		step := st.Settings.Axis().Unit().Scale(dir)
		exposed := false
		for i, cur := 1, pos; i <= st.Settings.Thickness(); i++ {
			cur = cur.Add(step)
			if st.World.IsAir(cur) {
				exposed = true
				break
			}
		}
		return exposed && falloffAccept(st, pos)
	}
}
