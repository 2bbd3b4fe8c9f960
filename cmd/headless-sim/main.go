package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/mini-arcade/internal/arcade"
	"github.com/Garsondee/mini-arcade/internal/config"
	"github.com/Garsondee/mini-arcade/internal/games"
	"github.com/Garsondee/mini-arcade/internal/logging"
)

type runStats struct {
	runIndex int
	module   string
	seed     int64
	ticks    int

	counts     map[arcade.EventKind]int
	firstTicks map[arcade.EventKind]int
	status     string

	leaksMounted int
	leaks        int
	err          error
}

// script feeds input for one tick of a run.
type script func(hs *games.Harness, tick, ticks int)

var scripts = map[string]script{
	games.HarborName:    harborScript,
	games.SkirmishName:  skirmishScript,
	games.StarfieldName: starfieldScript,
	games.ArenaName:     arenaScript,
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var module string
	var units int
	var configDir string
	var logLevel string

	flag.IntVar(&runs, "runs", 3, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 600, "frames per run")
	flag.Int64Var(&seedBase, "seed-base", 1, "seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&module, "module", games.SkirmishName, "module to run, or \"all\"")
	flag.IntVar(&units, "units", 0, "skirmish roster size (0 keeps the configured size)")
	flag.StringVar(&configDir, "config", "", "directory holding arcade.yaml")
	flag.StringVar(&logLevel, "log-level", "warn", "log level for host and game logs")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if units < 0 {
		fmt.Println("error: -units must be >= 0")
		return
	}
	modules, err := selectModules(module)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	opts := games.DefaultOptions()
	if configDir != "" {
		cfg, err := config.Load(configDir)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		opts = cfg.Options
	}
	if units > 0 {
		opts.Skirmish.Units = units
	}

	fmt.Printf("=== Headless Arcade Report ===\n")
	fmt.Printf("modules=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		strings.Join(modules, ","), runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs*len(modules))
	for _, name := range modules {
		for i := 0; i < runs; i++ {
			seed := seedBase + int64(i)*seedStep
			stats := runModule(i+1, name, seed, ticks,
				games.WithOptions(opts),
				games.WithSeed(seed),
				games.WithLogger(logging.New(logLevel, os.Stderr, nil)),
			)
			all = append(all, stats)
			printRun(stats)
		}
	}

	printAggregate(all)
}

func selectModules(name string) ([]string, error) {
	if name == "all" {
		return []string{games.HarborName, games.SkirmishName, games.StarfieldName, games.ArenaName}, nil
	}
	if _, ok := scripts[name]; !ok {
		return nil, fmt.Errorf("unsupported module %q (supported: %s, all)", name, strings.Join(scriptNames(), ", "))
	}
	return []string{name}, nil
}

func scriptNames() []string {
	names := make([]string, 0, len(scripts))
	for n := range scripts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func runModule(runIndex int, name string, seed int64, ticks int, opts ...games.HarnessOption) runStats {
	rs := runStats{
		runIndex:   runIndex,
		module:     name,
		seed:       seed,
		ticks:      ticks,
		firstTicks: map[arcade.EventKind]int{},
	}
	hs := games.NewHarness(opts...)
	if err := hs.Mount(name); err != nil {
		rs.err = err
		rs.counts = hs.Events.Counts()
		rs.leaks = hs.Leaks()
		return rs
	}

	play := scripts[name]
	for tick := 0; tick < ticks; tick++ {
		if play != nil {
			play(hs, tick, ticks)
		}
		hs.Step(1)
		markFirstTicks(rs.firstTicks, hs.Events, tick)
	}

	rs.status = hs.Host.Status()
	rs.leaksMounted = hs.Surface.Live()
	hs.Host.Unmount()
	rs.leaks = hs.Leaks()
	rs.counts = hs.Events.Counts()
	return rs
}

func markFirstTicks(first map[arcade.EventKind]int, rec *arcade.Recorder, tick int) {
	for kind, n := range rec.Counts() {
		if _, seen := first[kind]; !seen && n > 0 {
			first[kind] = tick
		}
	}
}

// harborScript holds the throttle and swings through a turn mid-run.
func harborScript(hs *games.Harness, tick, ticks int) {
	switch tick {
	case 0:
		hs.KeyDown("W")
	case ticks / 3:
		hs.KeyDown("D")
	case 2 * ticks / 3:
		hs.KeyUp("D")
	}
}

// skirmishScript box-selects the roster, then orders two moves.
func skirmishScript(hs *games.Harness, tick, ticks int) {
	w, h := float64(hs.Surface.W), float64(hs.Surface.H)
	switch tick {
	case 0:
		hs.Drag(0.05*w, 0.05*h, 0.95*w, 0.95*h, false)
	case 1:
		command(hs, w/2, h/3)
	case ticks / 2:
		command(hs, w/3, h/2)
	}
}

func command(hs *games.Harness, x, y float64) {
	hs.Press(arcade.ButtonSecondary, x, y, false)
	hs.Release(arcade.ButtonSecondary, x, y, false)
}

// starfieldScript accelerates for the first third, then coasts.
func starfieldScript(hs *games.Harness, tick, ticks int) {
	switch tick {
	case 0:
		hs.KeyDown("W")
	case ticks / 3:
		hs.KeyUp("W")
	}
}

// arenaScript fires at the first live target every few frames.
func arenaScript(hs *games.Harness, tick, _ int) {
	g, ok := hs.Active().(*games.ArenaGame)
	if !ok || tick%10 != 0 {
		return
	}
	targets := g.Targets()
	if len(targets) == 0 {
		return
	}
	aim := targets[0]
	hs.Press(arcade.ButtonPrimary, aim.X, aim.Y, false)
	hs.Release(arcade.ButtonPrimary, aim.X, aim.Y, false)
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d %s (seed=%d) ---\n", rs.runIndex, rs.module, rs.seed)
	if rs.err != nil {
		fmt.Printf("mount_error: %v\n", rs.err)
		fmt.Printf("leaks_after_failure=%d\n\n", rs.leaks)
		return
	}
	fmt.Printf("event_totals: %s\n", formatCounts(rs.counts))
	fmt.Printf("first_ticks: %s\n", formatCounts(rs.firstTicks))
	fmt.Printf("buffers_while_mounted=%d leaks_after_unmount=%d\n", rs.leaksMounted, rs.leaks)
	fmt.Printf("status:\n%s\n\n", indent(rs.status, "  "))
}

func printAggregate(all []runStats) {
	fmt.Printf("=== Aggregate ===\n")
	byModule := map[string][]runStats{}
	for _, rs := range all {
		byModule[rs.module] = append(byModule[rs.module], rs)
	}
	names := make([]string, 0, len(byModule))
	for n := range byModule {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		runs := byModule[n]
		sums := map[arcade.EventKind]int{}
		failures, leaky := 0, 0
		for _, rs := range runs {
			if rs.err != nil {
				failures++
			}
			if rs.leaks != 0 {
				leaky++
			}
			for k, v := range rs.counts {
				sums[k] += v
			}
		}
		fmt.Printf("%s: runs=%d mount_failures=%d leaky_runs=%d\n", n, len(runs), failures, leaky)
		fmt.Printf("  avg_events_per_run: %s\n", formatAverages(sums, len(runs)))
	}
}

// formatCounts renders counts as sorted key=value pairs.
func formatCounts(counts map[arcade.EventKind]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := sortedKinds(counts)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

func formatAverages(sums map[arcade.EventKind]int, n int) string {
	if len(sums) == 0 || n <= 0 {
		return "none"
	}
	keys := sortedKinds(sums)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%.1f", k, avg(sums[k], n)))
	}
	return strings.Join(parts, " ")
}

func sortedKinds(m map[arcade.EventKind]int) []arcade.EventKind {
	keys := make([]arcade.EventKind, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
