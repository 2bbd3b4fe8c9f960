package shell

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/mini-arcade/internal/arcade"
)

// FeedPanelWidth is the width of the event panel right of the game canvas.
const FeedPanelWidth = 300

const feedLineHeight = 15

// FeedEntry is one line of the event feed.
type FeedEntry struct {
	Frame int
	Kind  arcade.EventKind
	Text  string
}

// Feed is a ring buffer of recent game events rendered as a side panel.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
	frame   int
}

// NewFeed creates a feed holding the last capacity events.
func NewFeed(capacity int) *Feed {
	if capacity < 1 {
		capacity = 1
	}
	return &Feed{entries: make([]FeedEntry, capacity)}
}

// SetFrame stamps subsequent entries with frame.
func (f *Feed) SetFrame(frame int) { f.frame = frame }

// Record appends e. It has the arcade.EventFunc signature.
func (f *Feed) Record(e arcade.Event) {
	f.entries[f.head] = FeedEntry{Frame: f.frame, Kind: e.Kind(), Text: e.String()}
	f.head = (f.head + 1) % len(f.entries)
	if f.count < len(f.entries) {
		f.count++
	}
}

// Recent returns entries oldest first.
func (f *Feed) Recent() []FeedEntry {
	n := len(f.entries)
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+n)%n]
	}
	return out
}

func kindColor(k arcade.EventKind) color.RGBA {
	switch k {
	case arcade.KindSelectionChanged:
		return color.RGBA{R: 120, G: 230, B: 120, A: 255}
	case arcade.KindMoveCommand:
		return color.RGBA{R: 255, G: 220, B: 90, A: 255}
	case arcade.KindUnitArrived:
		return color.RGBA{R: 70, G: 110, B: 210, A: 255}
	case arcade.KindTargetHit:
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	default:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255}
	}
}

// Draw renders the panel at panelX, newest entry at the bottom.
func (f *Feed) Draw(screen *ebiten.Image, panelX, panelH int) {
	x := float32(panelX)
	vector.FillRect(screen, x, 0, FeedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, x, 0, x, float32(panelH), 1, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)
	vector.FillRect(screen, x, 0, FeedPanelWidth, 18, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	drawText(screen, "EVENTS", float64(panelX+8), 2, color.White)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	y := 22
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, x+2, float32(y), FeedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, x+5, float32(y+5), 3, 5, kindColor(e.Kind), false)
		drawText(screen, fmt.Sprintf("%5d %s", e.Frame, e.Text), float64(panelX+12), float64(y), color.RGBA{R: 200, G: 210, B: 200, A: 255})
		y += feedLineHeight
	}
}
