package games

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/mini-arcade/internal/arcade"
	"github.com/Garsondee/mini-arcade/internal/geom"
	"github.com/Garsondee/mini-arcade/internal/rts"
)

// SkirmishOptions configures the RTS game.
type SkirmishOptions struct {
	Units int        `mapstructure:"units"`
	World rts.Config `mapstructure:"world"`
}

// DefaultSkirmishOptions is a twelve-unit roster.
func DefaultSkirmishOptions() SkirmishOptions {
	return SkirmishOptions{Units: 12, World: rts.DefaultConfig()}
}

// Skirmish is the RTS module: left-drag selects, right-click orders a move.
type Skirmish struct {
	opts SkirmishOptions
}

// NewSkirmish creates the module.
func NewSkirmish(opts SkirmishOptions) *Skirmish { return &Skirmish{opts: opts} }

func (*Skirmish) Name() string { return SkirmishName }

// SkirmishGame is a mounted skirmish.
type SkirmishGame struct {
	*session
	world    *rts.World
	selector *rts.Selector
	cam      geom.Camera
}

func (m *Skirmish) Init(env arcade.Env) (h arcade.Handle, err error) {
	if err := m.opts.World.Validate(); err != nil {
		return nil, fmt.Errorf("skirmish world: %w", err)
	}
	s, err := newSession(SkirmishName, env)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			s.Dispose()
		}
	}()
	if err := s.allocCanvas(); err != nil {
		return nil, err
	}

	w, hgt := env.Surface.Size()
	g := &SkirmishGame{
		session: s,
		world:   rts.NewWorld(m.opts.World, env.OnEvent),
		cam: geom.Camera{
			Eye:    geom.Vec3{Y: 30, Z: 25},
			FovY:   math.Pi / 3,
			Width:  float64(w),
			Height: float64(hgt),
			Near:   0.5,
		},
	}
	g.selector = rts.NewSelector(g.world, &g.cam)
	for _, p := range roster(m.opts.Units, m.opts.World.FormationSpacing*1.5) {
		g.world.Spawn(p)
	}

	s.listen(g.input)
	s.onFrame(g.frame)
	s.log.Info().Int("units", m.opts.Units).Msg("skirmish ready")
	return g, nil
}

// roster lays n units out in a square block centred on the origin.
func roster(n int, spacing float64) []geom.Vec3 {
	if n <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	out := make([]geom.Vec3, 0, n)
	for i := 0; i < n; i++ {
		c, r := i%cols, i/cols
		out = append(out, geom.Vec3{
			X: (float64(c) - float64(cols-1)/2) * spacing,
			Z: (float64(r) - float64(rows-1)/2) * spacing,
		})
	}
	return out
}

// World exposes the simulation.
func (g *SkirmishGame) World() *rts.World { return g.world }

// Camera returns the view the pointer looks through.
func (g *SkirmishGame) Camera() geom.Camera { return g.cam }

func (g *SkirmishGame) input(e arcade.InputEvent) {
	p := geom.Vec2{X: e.X, Y: e.Y}
	switch e.Kind {
	case arcade.PointerDown:
		switch e.Button {
		case arcade.ButtonPrimary:
			g.selector.Press(p)
		case arcade.ButtonSecondary:
			g.selector.Command(p)
		}
	case arcade.PointerMove:
		g.selector.Move(p)
	case arcade.PointerUp:
		if e.Button == arcade.ButtonPrimary {
			g.selector.Release(p, e.Shift)
		}
	case arcade.KeyDown:
		if e.Key == "Escape" {
			g.selector.Cancel()
		}
	}
}

func (g *SkirmishGame) frame(dt float64) {
	if g.running {
		g.world.Tick(dt)
	}
	g.overlay(
		fmt.Sprintf("units %d  selected %d  moving %d", len(g.world.Units()), g.world.SelectedCount(), g.moving()),
		"left-drag select, shift adds, right-click move",
	)
	if img := g.image(); img != nil {
		g.draw(img)
	}
}

func (g *SkirmishGame) moving() int {
	n := 0
	for _, u := range g.world.Units() {
		if _, ok := u.Target(); ok {
			n++
		}
	}
	return n
}

// Status implements arcade.Reporter.
func (g *SkirmishGame) Status() string {
	s := fmt.Sprintf("skirmish units=%d selected=%d moving=%d markers=%d",
		len(g.world.Units()), g.world.SelectedCount(), g.moving(), len(g.world.Markers()))
	for _, u := range g.world.Units() {
		s += "\n  " + u.String()
	}
	return s
}

var (
	groundColor   = color.RGBA{R: 28, G: 42, B: 28, A: 255}
	gridColor     = color.RGBA{R: 44, G: 62, B: 44, A: 255}
	unitColor     = color.RGBA{R: 70, G: 110, B: 210, A: 255}
	selectedColor = color.RGBA{R: 120, G: 230, B: 120, A: 255}
	orderColor    = color.RGBA{R: 120, G: 230, B: 120, A: 90}
	markerColor   = color.RGBA{R: 255, G: 220, B: 90, A: 255}
	boxColor      = color.RGBA{R: 120, G: 230, B: 120, A: 200}
)

func (g *SkirmishGame) draw(img *ebiten.Image) {
	img.Fill(groundColor)
	const extent = 40
	for v := -extent; v <= extent; v += 4 {
		g.line3(img, geom.Vec3{X: float64(v), Z: -extent}, geom.Vec3{X: float64(v), Z: extent}, 1, gridColor)
		g.line3(img, geom.Vec3{X: -extent, Z: float64(v)}, geom.Vec3{X: extent, Z: float64(v)}, 1, gridColor)
	}

	for _, m := range g.world.Markers() {
		p, ok := g.cam.Project(m.Position)
		if !ok {
			continue
		}
		r := screenRadius(g.cam, m.Position, 0.4+0.8*(1-m.Fade()))
		vector.StrokeCircle(img, float32(p.X), float32(p.Y), r, 2, fade(markerColor, m.Fade()), true)
	}

	radius := g.world.Config().UnitRadius
	for _, u := range g.world.Units() {
		if t, ok := u.Target(); ok && u.Selected {
			g.line3(img, u.Position, t, 1, orderColor)
		}
		p, ok := g.cam.Project(u.Position)
		if !ok {
			continue
		}
		r := screenRadius(g.cam, u.Position, radius)
		vector.FillCircle(img, float32(p.X), float32(p.Y), r, unitColor, true)
		if u.Selected {
			vector.StrokeCircle(img, float32(p.X), float32(p.Y), r+3, 1.5, selectedColor, true)
		}
	}

	if region, ok := g.selector.Live(); ok {
		switch r := region.(type) {
		case rts.WorldRect:
			a := geom.Vec3{X: r.MinX, Z: r.MinZ}
			b := geom.Vec3{X: r.MaxX, Z: r.MinZ}
			c := geom.Vec3{X: r.MaxX, Z: r.MaxZ}
			d := geom.Vec3{X: r.MinX, Z: r.MaxZ}
			g.line3(img, a, b, 1.5, boxColor)
			g.line3(img, b, c, 1.5, boxColor)
			g.line3(img, c, d, 1.5, boxColor)
			g.line3(img, d, a, 1.5, boxColor)
		case rts.ScreenRect:
			vector.StrokeRect(img, float32(r.Min.X), float32(r.Min.Y),
				float32(r.Max.X-r.Min.X), float32(r.Max.Y-r.Min.Y), 1.5, boxColor, false)
		}
	}
}

// line3 draws a world-space segment, skipping it when either end is behind
// the camera.
func (g *SkirmishGame) line3(img *ebiten.Image, a, b geom.Vec3, width float32, c color.Color) {
	p, ok1 := g.cam.Project(a)
	q, ok2 := g.cam.Project(b)
	if !ok1 || !ok2 {
		return
	}
	vector.StrokeLine(img, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), width, c, true)
}
