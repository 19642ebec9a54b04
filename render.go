package canvasview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Draw renders the root container into target: the background, then every
// visible element in painter order through the visual transform. Hosts call
// it from their ebiten.Game Draw.
func (c *Controller) Draw(target *ebiten.Image) {
	if c.disposed {
		return
	}
	dst := target
	if !c.bounds.Empty() {
		dst = target.SubImage(image.Rect(
			int(c.bounds.X), int(c.bounds.Y),
			int(c.bounds.X+c.bounds.Width), int(c.bounds.Y+c.bounds.Height),
		)).(*ebiten.Image)
	}
	if bg := c.style.Background; bg != nil && bg.A > 0 {
		dst.Fill(bg.toRGBA())
	}

	// SubImage keeps the parent's coordinate space, so the layer offset is
	// part of the view matrix.
	view := multiplyAffine(translateAffine(c.bounds.X, c.bounds.Y), c.view.visual.matrix())

	var op ebiten.DrawImageOptions
	for _, el := range c.elements.order {
		if !el.Visible {
			continue
		}
		m := multiplyAffine(view, translateAffine(el.X, el.Y))
		img := el.Image
		if img == nil {
			if el.Width <= 0 || el.Height <= 0 {
				continue
			}
			img = c.solidPixel()
			m = multiplyAffine(m, [6]float64{el.Width, 0, 0, el.Height, 0, 0})
		}
		op = ebiten.DrawImageOptions{}
		setGeoM(&op.GeoM, m)
		op.ColorScale.ScaleWithColor(el.tint().toRGBA())
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, &op)
	}

	c.flushScreenshots(target)
}

// setGeoM loads an affine matrix [a, b, c, d, tx, ty] into g.
func setGeoM(g *ebiten.GeoM, m [6]float64) {
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
}

// solidPixel returns the 1x1 white image used for solid color elements.
func (c *Controller) solidPixel() *ebiten.Image {
	if c.whitePixel == nil {
		c.whitePixel = ebiten.NewImage(1, 1)
		c.whitePixel.Fill(color.White)
	}
	return c.whitePixel
}
