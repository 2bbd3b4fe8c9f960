package shell

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var face = text.NewGoXFace(basicfont.Face7x13)

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = 15
	text.Draw(dst, s, face, op)
}

// Overlay is the text layer games write status lines into.
type Overlay struct {
	lines []string
}

func (o *Overlay) SetLines(lines ...string) { o.lines = append(o.lines[:0], lines...) }

func (o *Overlay) Clear() { o.lines = o.lines[:0] }

// Lines returns the current text.
func (o *Overlay) Lines() []string { return o.lines }

func (o *Overlay) draw(dst *ebiten.Image, x, y float64) {
	for i, l := range o.lines {
		drawText(dst, l, x, y+float64(i)*15, color.RGBA{R: 230, G: 235, B: 230, A: 255})
	}
}
