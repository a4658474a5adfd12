package sky

import (
	"image/color"
	"math"
)

// StarSize is the side in pixels of the square drawn for a star of the
// given visual magnitude. Brighter stars are larger.
func StarSize(magnitude float64) float32 {
	size := 4.5 - 0.55*magnitude
	return float32(math.Max(1, math.Min(6, size)))
}

// Tint approximates the colour of a black body at kelvin. Zero or negative
// temperatures are white.
func Tint(kelvin float64) color.RGBA {
	if kelvin <= 0 {
		return color.RGBA{255, 255, 255, 255}
	}
	t := math.Max(1000, math.Min(40000, kelvin)) / 100

	var r, g, b float64
	if t <= 66 {
		r = 255
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}
	switch {
	case t >= 66:
		b = 255
	case t <= 19:
		b = 0
	default:
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}

	// Stars never look as saturated as the raw curve, so mix toward white.
	mix := func(c float64) uint8 {
		c = math.Max(0, math.Min(255, c))
		return uint8(0.5*c + 0.5*255)
	}
	return color.RGBA{mix(r), mix(g), mix(b), 255}
}

// Brightness is the alpha used for a star, fading the faintest ones.
func Brightness(magnitude float64) uint8 {
	a := 255 - 20*math.Max(0, magnitude-2)
	return uint8(math.Max(90, math.Min(255, a)))
}
