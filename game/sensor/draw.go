package sensor

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	background = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	foreground = color.RGBA{R: 220, G: 220, B: 60, A: 255}
)

func blank(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
	return img
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	r := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	if r.Empty() {
		return
	}

	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// drawBars plots one bar per value, scaled against max
func drawBars(values []float64, max float64, width, height int) *image.RGBA {
	img := blank(width, height)
	if len(values) == 0 || max <= 0 {
		return img
	}

	barWidth := float64(width) / float64(len(values))
	for i, v := range values {
		ratio := v / max
		if ratio < 0 {
			ratio = -ratio
		}
		if ratio > 1 {
			ratio = 1
		}

		x0 := int(float64(i) * barWidth)
		x1 := int(float64(i+1) * barWidth)
		top := height - int(ratio*float64(height))
		fillRect(img, x0, top, x1, height, foreground)
	}

	return img
}

// drawStrip plots camera pixels side by side
func drawStrip(colors []color.RGBA, width, height int) *image.RGBA {
	img := blank(width, height)
	if len(colors) == 0 {
		return img
	}

	cellWidth := float64(width) / float64(len(colors))
	for i, c := range colors {
		fillRect(img, int(float64(i)*cellWidth), 0, int(float64(i+1)*cellWidth), height, c)
	}

	return img
}
