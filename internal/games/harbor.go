package games

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/mini-arcade/internal/arcade"
	"github.com/Garsondee/mini-arcade/internal/boat"
	"github.com/Garsondee/mini-arcade/internal/geom"
	"github.com/Garsondee/mini-arcade/internal/wave"
)

const (
	meshCells   = 28
	meshSpacing = 2.0
	chaseBack   = 14.0
	chaseHeight = 6.0
	camBase     = 0.05 // chase camera smoothing base
	driftRate   = 0.15 // rad/s orbit while paused
)

// HarborOptions configures the boating game.
type HarborOptions struct {
	Waves []wave.Component `mapstructure:"waves"`
	Boat  boat.Params      `mapstructure:"boat"`
	Buoys int              `mapstructure:"buoys"`
}

// DefaultHarborOptions is the standard swell with three buoys.
func DefaultHarborOptions() HarborOptions {
	return HarborOptions{
		Waves: wave.DefaultComponents(),
		Boat:  boat.DefaultParams(),
		Buoys: 3,
	}
}

// Harbor is a boat on Gerstner water. W/S throttle, A/D steer.
type Harbor struct {
	opts HarborOptions
}

// NewHarbor creates the module. The wave configuration is validated at Init.
func NewHarbor(opts HarborOptions) *Harbor { return &Harbor{opts: opts} }

func (*Harbor) Name() string { return HarborName }

// buoy bobs on the surface at a fixed anchor.
type buoy struct {
	anchor geom.Vec3
	pos    geom.Vec3
	normal geom.Vec3
}

// HarborGame is a mounted harbor.
type HarborGame struct {
	*session
	field *wave.Field
	ctl   *boat.Controller
	buoys []buoy
	keys  keyState

	simTime float64 // advances only while running
	drift   float64 // cosmetic orbit angle while paused
	cam     geom.Camera
	camEye  geom.Vec3
}

func (m *Harbor) Init(env arcade.Env) (h arcade.Handle, err error) {
	field, err := wave.NewField(m.opts.Waves...)
	if err != nil {
		return nil, fmt.Errorf("harbor waves: %w", err)
	}
	if err := m.opts.Boat.Validate(); err != nil {
		return nil, fmt.Errorf("harbor boat: %w", err)
	}
	s, err := newSession(HarborName, env)
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

	g := &HarborGame{
		session: s,
		field:   field,
		ctl:     boat.NewController(field, m.opts.Boat, geom.Vec3{}, 0),
		keys:    keyState{},
	}
	for i := 0; i < m.opts.Buoys; i++ {
		a := 2 * math.Pi * float64(i) / float64(m.opts.Buoys)
		anchor := geom.Vec3{X: 18 * math.Sin(a), Z: 18*math.Cos(a) + 10}
		g.buoys = append(g.buoys, buoy{anchor: anchor, pos: anchor, normal: geom.Up})
	}
	w, hgt := env.Surface.Size()
	g.cam = geom.Camera{FovY: math.Pi / 3, Width: float64(w), Height: float64(hgt), Near: 0.5}
	g.camEye = g.chaseEye(0)
	g.floatBuoys()

	s.listen(g.keys.apply)
	s.onFrame(g.frame)
	s.log.Info().Int("waves", len(m.opts.Waves)).Int("buoys", len(g.buoys)).Msg("harbor ready")
	return g, nil
}

// Boat returns the hull state.
func (g *HarborGame) Boat() boat.Body { return g.ctl.Body() }

// SimTime is the wave clock. It stands still while paused.
func (g *HarborGame) SimTime() float64 { return g.simTime }

// Camera returns the current view.
func (g *HarborGame) Camera() geom.Camera { return g.cam }

func (g *HarborGame) frame(dt float64) {
	if g.running {
		g.simTime += dt
		throttle := g.keys.axis([]string{"W", "ArrowUp"}, []string{"S", "ArrowDown"})
		steer := g.keys.axis([]string{"D", "ArrowRight"}, []string{"A", "ArrowLeft"})
		g.ctl.Tick(dt, g.simTime, throttle, steer)
		g.floatBuoys()
	} else {
		g.drift += driftRate * dt
	}

	g.camEye = g.camEye.Lerp(g.chaseEye(g.drift), geom.Damp(camBase, dt))
	b := g.ctl.Body()
	g.cam.Eye = g.camEye
	g.cam.Target = b.Position.Add(geom.Vec3{Y: 1})

	g.overlay(
		fmt.Sprintf("speed %5.1f m/s  heading %3.0f deg", b.Speed, math.Mod(-b.Heading*180/math.Pi+360, 360)),
		fmt.Sprintf("throttle %+.2f  steer %+.2f", b.Throttle, b.Steer),
	)
	if img := g.image(); img != nil {
		g.draw(img)
	}
}

func (g *HarborGame) chaseEye(orbit float64) geom.Vec3 {
	b := g.ctl.Body()
	back := b.Forward().Scale(-chaseBack)
	s, c := math.Sincos(orbit)
	back = geom.Vec3{X: back.X*c + back.Z*s, Z: -back.X*s + back.Z*c}
	return b.Position.Add(back).Add(geom.Vec3{Y: chaseHeight})
}

func (g *HarborGame) floatBuoys() {
	for i := range g.buoys {
		bu := &g.buoys[i]
		smp := g.field.Sample(bu.anchor.X, bu.anchor.Z, g.simTime)
		bu.pos = geom.Vec3{X: bu.anchor.X + smp.Displacement.X, Y: smp.Height, Z: bu.anchor.Z + smp.Displacement.Z}
		bu.normal = smp.Normal
	}
}

// Status implements arcade.Reporter.
func (g *HarborGame) Status() string {
	return fmt.Sprintf("harbor t=%.2fs %s buoys=%d", g.simTime, g.ctl.Body(), len(g.buoys))
}

var (
	seaDeep   = color.RGBA{R: 8, G: 28, B: 52, A: 255}
	seaLow    = color.RGBA{R: 30, G: 80, B: 130, A: 255}
	seaCrest  = color.RGBA{R: 170, G: 210, B: 235, A: 255}
	hullColor = color.RGBA{R: 235, G: 225, B: 200, A: 255}
	buoyColor = color.RGBA{R: 230, G: 80, B: 40, A: 255}
	wakeColor = color.RGBA{R: 200, G: 230, B: 255, A: 120}
)

func (g *HarborGame) draw(img *ebiten.Image) {
	img.Fill(seaDeep)
	g.drawMesh(img)
	for _, bu := range g.buoys {
		p, ok := g.cam.Project(bu.pos)
		if !ok {
			continue
		}
		r := screenRadius(g.cam, bu.pos, 0.6)
		vector.FillCircle(img, float32(p.X), float32(p.Y), r, buoyColor, true)
		top, ok := g.cam.Project(bu.pos.Add(bu.normal.Scale(1.5)))
		if ok {
			vector.StrokeLine(img, float32(p.X), float32(p.Y), float32(top.X), float32(top.Y), 1.5, buoyColor, true)
		}
	}
	g.drawHull(img)
}

// drawMesh draws the water as a wireframe grid displaced on the vertex path.
func (g *HarborGame) drawMesh(img *ebiten.Image) {
	b := g.ctl.Body()
	ox := math.Floor(b.Position.X/meshSpacing)*meshSpacing - meshCells/2*meshSpacing
	oz := math.Floor(b.Position.Z/meshSpacing)*meshSpacing - meshCells/2*meshSpacing
	t := float32(g.simTime)
	maxH := g.field.MaxHeight()

	var pts [meshCells + 1][meshCells + 1]geom.Vec2
	var vis [meshCells + 1][meshCells + 1]bool
	var hs [meshCells + 1][meshCells + 1]float64
	for i := 0; i <= meshCells; i++ {
		for j := 0; j <= meshCells; j++ {
			x := float32(ox + float64(i)*meshSpacing)
			z := float32(oz + float64(j)*meshSpacing)
			dx, dy, dz := g.field.VertexDisplacement(x, z, t)
			w := geom.Vec3{X: float64(x + dx), Y: float64(dy), Z: float64(z + dz)}
			pts[i][j], vis[i][j] = g.cam.Project(w)
			hs[i][j] = float64(dy)
		}
	}
	line := func(u, v [2]int) {
		if !vis[u[0]][u[1]] || !vis[v[0]][v[1]] {
			return
		}
		h := (hs[u[0]][u[1]] + hs[v[0]][v[1]]) / 2
		c := seaLow
		if maxH > 0 {
			c = mix(seaLow, seaCrest, (h/maxH+1)/2)
		}
		p, q := pts[u[0]][u[1]], pts[v[0]][v[1]]
		vector.StrokeLine(img, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 1, c, false)
	}
	for i := 0; i <= meshCells; i++ {
		for j := 0; j <= meshCells; j++ {
			if i < meshCells {
				line([2]int{i, j}, [2]int{i + 1, j})
			}
			if j < meshCells {
				line([2]int{i, j}, [2]int{i, j + 1})
			}
		}
	}
}

// hullOutline is the deck plan in body space, bow first.
var hullOutline = []geom.Vec3{
	{Z: 2.4},
	{X: -0.9, Z: 0.2},
	{X: -0.7, Z: -1.8},
	{X: 0.7, Z: -1.8},
	{X: 0.9, Z: 0.2},
}

func (g *HarborGame) drawHull(img *ebiten.Image) {
	b := g.ctl.Body()
	pts := make([]geom.Vec2, 0, len(hullOutline))
	for _, v := range hullOutline {
		p, ok := g.cam.Project(b.Position.Add(b.Attitude.Rotate(v)))
		if !ok {
			return
		}
		pts = append(pts, p)
	}
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		vector.StrokeLine(img, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 2, hullColor, true)
	}
	bow, stern := pts[0], pts[2].Add(pts[3]).Scale(0.5)
	vector.StrokeLine(img, float32(bow.X), float32(bow.Y), float32(stern.X), float32(stern.Y), 1, hullColor, true)

	if b.Speed > 0.5 {
		stern := b.Position.Add(b.Attitude.Rotate(geom.Vec3{Z: -1.8}))
		wake := stern.Sub(b.Forward().Scale(b.Speed * 0.6))
		p, ok1 := g.cam.Project(stern)
		q, ok2 := g.cam.Project(wake)
		if ok1 && ok2 {
			vector.StrokeLine(img, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 3, wakeColor, true)
		}
	}
}

// screenRadius is the on-screen size of a world-space radius r at p.
func screenRadius(cam geom.Camera, p geom.Vec3, r float64) float32 {
	a, ok1 := cam.Project(p)
	b, ok2 := cam.Project(p.Add(geom.Vec3{Y: r}))
	if !ok1 || !ok2 {
		return 1
	}
	d := a.Dist(b)
	if d < 1 {
		d = 1
	}
	return float32(d)
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	t = geom.Clamp(t, 0, 1)
	return color.RGBA{
		R: uint8(geom.Lerp(float64(a.R), float64(b.R), t)),
		G: uint8(geom.Lerp(float64(a.G), float64(b.G), t)),
		B: uint8(geom.Lerp(float64(a.B), float64(b.B), t)),
		A: 255,
	}
}
