package games

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/mini-arcade/internal/arcade"
	"github.com/Garsondee/mini-arcade/internal/geom"
)

// StarfieldOptions configures the star tunnel.
type StarfieldOptions struct {
	Stars  int     `mapstructure:"stars"`
	Seed   int64   `mapstructure:"seed"`
	Speed  float64 `mapstructure:"speed"`  // units/s toward the viewer
	Spread float64 `mapstructure:"spread"` // half-width of the spawn volume
	Near   float64 `mapstructure:"near"`
	Far    float64 `mapstructure:"far"`
}

// DefaultStarfieldOptions is a few hundred stars at cruising speed.
func DefaultStarfieldOptions() StarfieldOptions {
	return StarfieldOptions{Stars: 400, Seed: 1, Speed: 30, Spread: 60, Near: 1, Far: 120}
}

// Starfield flies through recycled stars. W/S change speed.
type Starfield struct {
	opts StarfieldOptions
}

// NewStarfield creates the module.
func NewStarfield(opts StarfieldOptions) *Starfield { return &Starfield{opts: opts} }

func (*Starfield) Name() string { return StarfieldName }

type star struct {
	pos  geom.Vec3
	prev geom.Vec2 // last screen position, for streaks
	seen bool
}

// StarfieldGame is a mounted starfield.
type StarfieldGame struct {
	*session
	opts     StarfieldOptions
	rng      *rand.Rand
	stars    []star
	keys     keyState
	speed    float64
	recycled int
	focal    float64
	cx, cy   float64
}

func (m *Starfield) Init(env arcade.Env) (h arcade.Handle, err error) {
	s, err := newSession(StarfieldName, env)
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

	opts := m.opts
	if opts.Near <= 0 || opts.Far <= opts.Near {
		return nil, fmt.Errorf("starfield depth range (%g, %g] is empty", opts.Near, opts.Far)
	}
	w, hgt := env.Surface.Size()
	g := &StarfieldGame{
		session: s,
		opts:    opts,
		rng:     rand.New(rand.NewSource(opts.Seed)), // #nosec G404 -- cosmetic
		stars:   make([]star, opts.Stars),
		keys:    keyState{},
		speed:   opts.Speed,
		focal:   float64(hgt) / 2,
		cx:      float64(w) / 2,
		cy:      float64(hgt) / 2,
	}
	for i := range g.stars {
		g.spawn(&g.stars[i], opts.Near+g.rng.Float64()*(opts.Far-opts.Near))
	}

	s.listen(g.keys.apply)
	s.onFrame(g.frame)
	s.log.Info().Int("stars", opts.Stars).Int64("seed", opts.Seed).Msg("starfield ready")
	return g, nil
}

func (g *StarfieldGame) spawn(st *star, z float64) {
	st.pos = geom.Vec3{
		X: (g.rng.Float64()*2 - 1) * g.opts.Spread,
		Y: (g.rng.Float64()*2 - 1) * g.opts.Spread,
		Z: z,
	}
	st.seen = false
}

// project maps a star to the screen. Points at or behind the near plane are
// never visible.
func (g *StarfieldGame) project(p geom.Vec3) (geom.Vec2, bool) {
	if p.Z <= g.opts.Near {
		return geom.Vec2{}, false
	}
	s := geom.Vec2{X: g.cx + p.X/p.Z*g.focal, Y: g.cy - p.Y/p.Z*g.focal}
	return s, s.X >= 0 && s.Y >= 0 && s.X <= 2*g.cx && s.Y <= 2*g.cy
}

func (g *StarfieldGame) frame(dt float64) {
	if g.running {
		g.speed += g.keys.axis([]string{"W", "ArrowUp"}, []string{"S", "ArrowDown"}) * 20 * dt
		g.speed = geom.Clamp(g.speed, 0, 4*g.opts.Speed)
		g.step(dt)
	}
	g.overlay(fmt.Sprintf("speed %.0f  stars %d  recycled %d", g.speed, len(g.stars), g.recycled))
	if img := g.image(); img != nil {
		g.draw(img)
	}
}

// step moves every star toward the viewer and sends the ones that passed the
// near plane or left the view back to the far plane.
func (g *StarfieldGame) step(dt float64) {
	for i := range g.stars {
		st := &g.stars[i]
		if p, ok := g.project(st.pos); ok {
			st.prev, st.seen = p, true
		}
		st.pos.Z -= g.speed * dt
		if _, ok := g.project(st.pos); !ok {
			g.spawn(st, g.opts.Far)
			g.recycled++
		}
	}
}

// Recycled counts stars sent back to the far plane.
func (g *StarfieldGame) Recycled() int { return g.recycled }

// Stars returns star positions.
func (g *StarfieldGame) Stars() []geom.Vec3 {
	out := make([]geom.Vec3, len(g.stars))
	for i, st := range g.stars {
		out[i] = st.pos
	}
	return out
}

// Status implements arcade.Reporter.
func (g *StarfieldGame) Status() string {
	return fmt.Sprintf("starfield stars=%d speed=%.1f recycled=%d", len(g.stars), g.speed, g.recycled)
}

var (
	spaceColor = color.RGBA{R: 2, G: 2, B: 10, A: 255}
	starColor  = color.RGBA{R: 230, G: 235, B: 255, A: 255}
)

func (g *StarfieldGame) draw(img *ebiten.Image) {
	img.Fill(spaceColor)
	for _, st := range g.stars {
		p, ok := g.project(st.pos)
		if !ok {
			continue
		}
		depth := 1 - st.pos.Z/g.opts.Far
		c := fade(starColor, 0.2+0.8*depth)
		r := float32(0.5 + 2*depth)
		if st.seen {
			vector.StrokeLine(img, float32(st.prev.X), float32(st.prev.Y), float32(p.X), float32(p.Y), r, c, true)
		} else {
			vector.FillCircle(img, float32(p.X), float32(p.Y), r, c, true)
		}
	}
}
