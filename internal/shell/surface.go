package shell

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/mini-arcade/internal/arcade"
)

// ErrBadSize is returned for an empty allocation request.
var ErrBadSize = errors.New("shell: buffer size must be positive")

// Surface hands out offscreen ebiten images and remembers which one the
// mounted game presents.
type Surface struct {
	w, h      int
	live      int
	presented arcade.Buffer
}

// NewSurface creates a surface of w x h pixels.
func NewSurface(w, h int) *Surface {
	return &Surface{w: w, h: h}
}

type imageBuffer struct {
	s   *Surface
	img *ebiten.Image
}

// Image is nil once the buffer is deallocated.
func (b *imageBuffer) Image() *ebiten.Image { return b.img }

func (b *imageBuffer) Deallocate() {
	if b.img == nil {
		return
	}
	b.img.Deallocate()
	b.img = nil
	b.s.live--
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Allocate(w, h int) (arcade.Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("allocate %dx%d: %w", w, h, ErrBadSize)
	}
	s.live++
	return &imageBuffer{s: s, img: ebiten.NewImage(w, h)}, nil
}

func (s *Surface) Present(b arcade.Buffer) { s.presented = b }

// Presented returns the buffer the shell should blit.
func (s *Surface) Presented() arcade.Buffer { return s.presented }

// Live is the number of images not yet deallocated.
func (s *Surface) Live() int { return s.live }
