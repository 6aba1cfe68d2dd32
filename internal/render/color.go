package render

import "image/color"

// Blend mixes src over c with the given weight. A weight of 0 keeps c, 1
// gives src.
func Blend(c, src color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha
	return color.RGBA{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
		A: 255,
	}
}

// Scale multiplies the color channels by factor, saturating at 255.
func Scale(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: clampChannel(float64(c.R) * factor),
		G: clampChannel(float64(c.G) * factor),
		B: clampChannel(float64(c.B) * factor),
		A: c.A,
	}
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
