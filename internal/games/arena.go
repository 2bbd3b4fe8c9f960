package games

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/mini-arcade/internal/arcade"
	"github.com/Garsondee/mini-arcade/internal/geom"
)

// ArenaOptions configures the shooting gallery.
type ArenaOptions struct {
	Targets      int     `mapstructure:"targets"`
	Seed         int64   `mapstructure:"seed"`
	ShipSpeed    float64 `mapstructure:"shipSpeed"` // px/s
	ShotSpeed    float64 `mapstructure:"shotSpeed"` // px/s
	ShotLife     float64 `mapstructure:"shotLife"`  // seconds
	ShotRadius   float64 `mapstructure:"shotRadius"`
	TargetRadius float64 `mapstructure:"targetRadius"`
	Cooldown     float64 `mapstructure:"cooldown"` // seconds between shots
}

// DefaultArenaOptions is five targets and a quick-firing ship.
func DefaultArenaOptions() ArenaOptions {
	return ArenaOptions{
		Targets:      5,
		Seed:         1,
		ShipSpeed:    220,
		ShotSpeed:    520,
		ShotLife:     1.2,
		ShotRadius:   3,
		TargetRadius: 14,
		Cooldown:     0.15,
	}
}

// Arena is a top-down gallery: WASD moves the ship, primary click fires
// toward the pointer.
type Arena struct {
	opts ArenaOptions
}

// NewArena creates the module.
func NewArena(opts ArenaOptions) *Arena { return &Arena{opts: opts} }

func (*Arena) Name() string { return ArenaName }

type shot struct {
	pos, vel geom.Vec2
	life     float64
}

type target struct {
	pos geom.Vec2
}

// flash is a cosmetic hit ring. It keeps fading while paused.
type flash struct {
	pos  geom.Vec2
	life float64
}

const flashLife = 0.4

// ArenaGame is a mounted arena.
type ArenaGame struct {
	*session
	opts    ArenaOptions
	rng     *rand.Rand
	keys    keyState
	w, h    float64
	ship    geom.Vec2
	shots   []shot
	targets []target
	flashes []flash
	cool    float64
	score   int
	fired   int
}

func (m *Arena) Init(env arcade.Env) (h arcade.Handle, err error) {
	s, err := newSession(ArenaName, env)
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
	g := &ArenaGame{
		session: s,
		opts:    m.opts,
		rng:     rand.New(rand.NewSource(m.opts.Seed)), // #nosec G404 -- gameplay placement
		keys:    keyState{},
		w:       float64(w),
		h:       float64(hgt),
	}
	g.ship = geom.Vec2{X: g.w / 2, Y: g.h / 2}
	g.targets = make([]target, m.opts.Targets)
	for i := range g.targets {
		g.targets[i].pos = g.placeTarget()
	}

	s.listen(g.input)
	s.onFrame(g.frame)
	s.log.Info().Int("targets", m.opts.Targets).Int64("seed", m.opts.Seed).Msg("arena ready")
	return g, nil
}

// placeTarget picks a spot inside the arena, away from the ship.
func (g *ArenaGame) placeTarget() geom.Vec2 {
	r := g.opts.TargetRadius
	var p geom.Vec2
	for try := 0; try < 16; try++ {
		p = geom.Vec2{
			X: r + g.rng.Float64()*math.Max(g.w-2*r, 0),
			Y: r + g.rng.Float64()*math.Max(g.h-2*r, 0),
		}
		if p.Dist(g.ship) > 6*r {
			break
		}
	}
	return p
}

func (g *ArenaGame) input(e arcade.InputEvent) {
	g.keys.apply(e)
	if e.Kind == arcade.PointerDown && e.Button == arcade.ButtonPrimary && g.running {
		g.fire(geom.Vec2{X: e.X, Y: e.Y})
	}
}

// fire launches a shot from the ship toward aim. It reports false while the
// gun is cooling down or when aim is on the ship.
func (g *ArenaGame) fire(aim geom.Vec2) bool {
	if g.cool > 0 {
		return false
	}
	d := aim.Sub(g.ship)
	l := d.Len()
	if l < 1e-6 {
		return false
	}
	g.shots = append(g.shots, shot{
		pos:  g.ship,
		vel:  d.Scale(g.opts.ShotSpeed / l),
		life: g.opts.ShotLife,
	})
	g.cool = g.opts.Cooldown
	g.fired++
	return true
}

func (g *ArenaGame) frame(dt float64) {
	if g.running {
		g.step(dt)
	}
	g.fadeFlashes(dt)
	g.overlay(fmt.Sprintf("score %d  shots %d  fired %d", g.score, len(g.shots), g.fired), "WASD move, click to fire")
	if img := g.image(); img != nil {
		g.draw(img)
	}
}

func (g *ArenaGame) step(dt float64) {
	g.cool = math.Max(0, g.cool-dt)

	move := geom.Vec2{
		X: g.keys.axis([]string{"D", "ArrowRight"}, []string{"A", "ArrowLeft"}),
		Y: g.keys.axis([]string{"S", "ArrowDown"}, []string{"W", "ArrowUp"}),
	}
	if l := move.Len(); l > 0 {
		g.ship = g.ship.Add(move.Scale(g.opts.ShipSpeed * dt / l))
		g.ship.X = geom.Clamp(g.ship.X, 0, g.w)
		g.ship.Y = geom.Clamp(g.ship.Y, 0, g.h)
	}

	live := g.shots[:0]
	for _, s := range g.shots {
		s.pos = s.pos.Add(s.vel.Scale(dt))
		s.life -= dt
		if s.life <= 0 || s.pos.X < 0 || s.pos.Y < 0 || s.pos.X > g.w || s.pos.Y > g.h {
			continue
		}
		if i := g.hitTarget(s.pos); i >= 0 {
			g.score++
			g.flashes = append(g.flashes, flash{pos: g.targets[i].pos, life: flashLife})
			g.targets[i].pos = g.placeTarget()
			g.emit(arcade.TargetHit{Score: g.score})
			continue
		}
		live = append(live, s)
	}
	g.shots = live
}

// hitTarget returns the index of the first target the shot overlaps, or -1.
func (g *ArenaGame) hitTarget(p geom.Vec2) int {
	reach := g.opts.ShotRadius + g.opts.TargetRadius
	for i, t := range g.targets {
		if t.pos.Dist(p) <= reach {
			return i
		}
	}
	return -1
}

func (g *ArenaGame) fadeFlashes(dt float64) {
	live := g.flashes[:0]
	for _, f := range g.flashes {
		f.life -= dt
		if f.life > 0 {
			live = append(live, f)
		}
	}
	g.flashes = live
}

// Ship is the ship's position in canvas pixels.
func (g *ArenaGame) Ship() geom.Vec2 { return g.ship }

// Targets returns the live target positions.
func (g *ArenaGame) Targets() []geom.Vec2 {
	out := make([]geom.Vec2, len(g.targets))
	for i, t := range g.targets {
		out[i] = t.pos
	}
	return out
}

// Score is the number of targets destroyed.
func (g *ArenaGame) Score() int { return g.score }

// Status implements arcade.Reporter.
func (g *ArenaGame) Status() string {
	return fmt.Sprintf("arena score=%d fired=%d shots=%d ship=(%.0f,%.0f)",
		g.score, g.fired, len(g.shots), g.ship.X, g.ship.Y)
}

var (
	arenaFloor  = color.RGBA{R: 16, G: 14, B: 22, A: 255}
	shipColor   = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	shotColor   = color.RGBA{R: 255, G: 240, B: 140, A: 255}
	targetColor = color.RGBA{R: 210, G: 70, B: 70, A: 255}
	flashColor  = color.RGBA{R: 255, G: 200, B: 120, A: 255}
)

func (g *ArenaGame) draw(img *ebiten.Image) {
	img.Fill(arenaFloor)
	for _, t := range g.targets {
		r := float32(g.opts.TargetRadius)
		vector.FillCircle(img, float32(t.pos.X), float32(t.pos.Y), r, targetColor, true)
		vector.StrokeCircle(img, float32(t.pos.X), float32(t.pos.Y), r*0.55, 2, arenaFloor, true)
	}
	for _, f := range g.flashes {
		k := f.life / flashLife
		r := float32(g.opts.TargetRadius * (2 - k))
		vector.StrokeCircle(img, float32(f.pos.X), float32(f.pos.Y), r, 2, fade(flashColor, k), true)
	}
	for _, s := range g.shots {
		vector.FillCircle(img, float32(s.pos.X), float32(s.pos.Y), float32(g.opts.ShotRadius), shotColor, true)
	}
	vector.FillCircle(img, float32(g.ship.X), float32(g.ship.Y), 8, shipColor, true)
}
