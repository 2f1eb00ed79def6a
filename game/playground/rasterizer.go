package playground

import (
	"image"
	"image/color"
	"math"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/physics"
	"golang.org/x/image/draw"
)

var floorColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

type maskPixel struct {
	x, y  int
	color color.RGBA
}

// drawMask caches the pixels covered by an entity for one transform
type drawMask struct {
	position vector.Vector2
	angle    float64
	zones    bool
	pixels   []maskPixel
}

func (m *drawMask) matches(position vector.Vector2, angle float64, zones bool) bool {
	return m != nil && m.position.Equals(position) && m.angle == angle && m.zones == zones
}

// Draw paints the entity on surface, one pixel per unit with y pointing up.
// With drawZones the interaction zone is painted too, darker than the body.
func (e *Entity) Draw(surface *image.RGBA, drawZones bool, forceRecomputeMask bool) {
	if !e.InWorld() {
		return
	}

	position, angle := e.Position(), e.Angle()
	if forceRecomputeMask || !e.mask.matches(position, angle, drawZones) {
		e.mask = e.computeMask(surface.Bounds().Dy(), drawZones)
	}

	bounds := surface.Bounds()
	for _, p := range e.mask.pixels {
		if image.Pt(p.x, p.y).In(bounds) {
			surface.SetRGBA(p.x, p.y, p.color)
		}
	}
}

func (e *Entity) computeMask(height int, zones bool) *drawMask {
	xf := e.body.GetTransform()
	mask := &drawMask{position: xf.Position, angle: e.body.GetAngle(), zones: zones}

	bb := e.visible.GetAABB()

	var zone *physics.Fixture
	if zones && e.interaction != nil {
		zone = e.interaction
		bb = zone.GetAABB()
	}

	x0, x1 := int(math.Floor(bb.Lower.GetX())), int(math.Ceil(bb.Upper.GetX()))
	y0, y1 := int(math.Floor(bb.Lower.GetY())), int(math.Ceil(bb.Upper.GetY()))

	for wy := y0; wy < y1; wy++ {
		for wx := x0; wx < x1; wx++ {
			center := vector.MakeVector2(float64(wx)+0.5, float64(wy)+0.5)
			px, py := wx, height-1-wy

			if _, dist := e.visible.NearestPoint(center); dist <= 0 {
				local := xf.ApplyInverse(center)
				mask.pixels = append(mask.pixels, maskPixel{px, py, e.texture.ColorAt(local)})
				continue
			}

			if zone != nil {
				if _, dist := zone.NearestPoint(center); dist <= 0 {
					mask.pixels = append(mask.pixels, maskPixel{px, py, darken(e.texture.Average())})
				}
			}
		}
	}

	return mask
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 3, G: c.G / 3, B: c.B / 3, A: 255}
}

// Surface renders the playground top-down, background elements first, agents
// last. The rendering is cached until something moves or changes.
func (pg *Playground) Surface() *image.RGBA {
	if !pg.surfaceDirty && pg.surface != nil {
		return pg.surface
	}

	w, h := int(math.Ceil(pg.size.GetX())), int(math.Ceil(pg.size.GetY()))
	if pg.surface == nil || pg.surface.Bounds().Dx() != w || pg.surface.Bounds().Dy() != h {
		pg.surface = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	pg.render(pg.surface, false)
	pg.surfaceDirty = false

	return pg.surface
}

// Render draws a fresh top-down image, optionally with interaction zones
func (pg *Playground) Render(drawZones bool) *image.RGBA {
	w, h := int(math.Ceil(pg.size.GetX())), int(math.Ceil(pg.size.GetY()))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	pg.render(img, drawZones)
	return img
}

func (pg *Playground) render(img *image.RGBA, drawZones bool) {
	draw.Draw(img, img.Bounds(), &image.Uniform{C: floorColor}, image.Point{}, draw.Src)

	elements := pg.Elements()
	for _, e := range elements {
		if e.Base().background {
			e.Base().Draw(img, drawZones, false)
		}
	}

	for _, e := range elements {
		if !e.Base().background {
			e.Base().Draw(img, drawZones, false)
		}
	}

	for _, a := range pg.Agents() {
		for _, p := range a.parts {
			p.Draw(img, false, false)
		}
	}
}
