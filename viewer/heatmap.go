package viewer

import (
	"image/color"
	"math"
)

// hsvColor represents a color in HSV space.
type hsvColor struct {
	H float64 // Hue in degrees [0, 360)
	S float64 // Saturation [0, 1]
	V float64 // Value [0, 1]
}

// hsvToRGB converts HSV (H in degrees, S/V in [0,1]) back to 8-bit RGB.
func hsvToRGB(hsv hsvColor) color.NRGBA {
	c := hsv.V * hsv.S
	h := hsv.H / 60
	x := c * (1 - math.Abs(math.Mod(h, 2)-1))
	var r, g, b float64
	switch {
	case h < 1:
		r, g, b = c, x, 0
	case h < 2:
		r, g, b = x, c, 0
	case h < 3:
		r, g, b = 0, c, x
	case h < 4:
		r, g, b = 0, x, c
	case h < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := hsv.V - c
	return color.NRGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// meanCurvatureHeatmap maps a vertex's mean curvature to a color on a
// blue (concave) - white (flat) - red (convex) ramp, clamped at +/- clampAbs.
func meanCurvatureHeatmap(mean float64, clampAbs float64) color.NRGBA {
	if clampAbs <= 0 {
		clampAbs = 1
	}
	t := mean / clampAbs
	if t > 1 {
		t = 1
	}
	if t < -1 {
		t = -1
	}

	// t in [-1, 1]: hue is blue (240) for t < 0 and red (0) for t > 0, with
	// saturation |t|, so the ramp fades through white at t = 0.
	var hsv hsvColor
	switch {
	case t < 0:
		hsv = hsvColor{H: 240, S: -t, V: 1}
	case t > 0:
		hsv = hsvColor{H: 0, S: t, V: 1}
	default:
		hsv = hsvColor{H: 0, S: 0, V: 1}
	}
	return hsvToRGB(hsv)
}
