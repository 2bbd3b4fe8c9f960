package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/mini-arcade/internal/arcade"
	"github.com/Garsondee/mini-arcade/internal/games"
)

type fixture struct {
	shell   *Shell
	host    *arcade.Host
	surface *arcade.HeadlessSurface
	feed    *Feed
	copied  []string
	fulls   int
}

func newFixture(t *testing.T, copyErr error) *fixture {
	t.Helper()
	f := &fixture{feed: NewFeed(8)}
	w, h := GameSize(960, 640)
	f.surface = arcade.NewHeadlessSurface(w, h)
	f.host = arcade.NewHost(f.surface, &Overlay{}, arcade.WithEventFunc(f.feed.Record))
	var order []string
	for _, m := range games.Modules(games.DefaultOptions()) {
		f.host.Register(m)
		order = append(order, m.Name())
	}
	order = append(order, "missing")
	f.shell = New(f.host, f.surface, &Overlay{}, f.feed, 960, 640, order,
		WithClipboard(func(s string) error {
			if copyErr != nil {
				return copyErr
			}
			f.copied = append(f.copied, s)
			return nil
		}),
		WithFullscreenToggle(func() { f.fulls++ }),
	)
	return f
}

func TestHandleKey_DigitsMountInOrder(t *testing.T) {
	f := newFixture(t, nil)

	require.True(t, f.shell.HandleKey("Digit2"))
	name, h := f.host.Active()
	assert.Equal(t, games.SkirmishName, name)
	require.NotNil(t, h)
	assert.True(t, h.IsRunning())
	assert.Equal(t, "mounted skirmish", f.shell.Message())

	require.True(t, f.shell.HandleKey("Digit4"))
	name, _ = f.host.Active()
	assert.Equal(t, games.ArenaName, name)
	assert.Equal(t, 1, f.surface.Live())
}

func TestHandleKey_MountFailureIsReported(t *testing.T) {
	f := newFixture(t, nil)
	require.True(t, f.shell.HandleKey("Digit1"))

	require.True(t, f.shell.HandleKey("Digit5"))
	name, _ := f.host.Active()
	assert.Equal(t, games.HarborName, name, "unknown module leaves the current one mounted")
	assert.Contains(t, f.shell.Message(), "could not start missing")
	assert.Equal(t, 1, f.surface.Live())
}

func TestHandleKey_SpaceTogglesPause(t *testing.T) {
	f := newFixture(t, nil)
	f.shell.HandleKey("Digit3")
	_, h := f.host.Active()

	f.shell.HandleKey("Space")
	assert.False(t, h.IsRunning())
	f.shell.HandleKey("Space")
	assert.True(t, h.IsRunning())
}

func TestHandleKey_CopyStatus(t *testing.T) {
	f := newFixture(t, nil)
	f.shell.HandleKey("Digit1")
	require.True(t, f.shell.HandleKey("C"))
	require.Len(t, f.copied, 1)
	assert.Contains(t, f.copied[0], "harbor session=")
	assert.Contains(t, f.copied[0], "buoys=3")
	assert.Equal(t, "status copied to clipboard", f.shell.Message())
}

func TestHandleKey_CopyFailureIsReported(t *testing.T) {
	f := newFixture(t, errors.New("no xclip"))
	require.True(t, f.shell.HandleKey("C"))
	assert.Equal(t, "clipboard unavailable", f.shell.Message())
}

func TestHandleKey_OtherKeysGoToTheGame(t *testing.T) {
	f := newFixture(t, nil)
	assert.True(t, f.shell.HandleKey("F"))
	assert.Equal(t, 1, f.fulls)
	assert.True(t, f.shell.HandleKey("H"))
	assert.False(t, f.shell.showHelp)
	assert.False(t, f.shell.HandleKey("W"))
	assert.False(t, f.shell.HandleKey("Escape"))
}

func TestUpdate_AdvancesMountedGame(t *testing.T) {
	f := newFixture(t, nil)
	f.shell.HandleKey("Digit1")
	_, h := f.host.Active()
	harbor := h.(*games.HarborGame)

	for i := 0; i < 30; i++ {
		f.shell.frame++
		f.feed.SetFrame(f.shell.frame)
		f.host.Frame(1 / float64(f.shell.tickRate))
	}
	assert.InDelta(t, 0.5, harbor.SimTime(), 1e-9)
}

func TestMessage_Expires(t *testing.T) {
	f := newFixture(t, nil)
	f.shell.flash("hello")
	f.shell.messageTTL = 1
	assert.Equal(t, "hello", f.shell.Message())
	f.shell.messageTTL--
	assert.Empty(t, f.shell.Message())
}

func TestFeed_KeepsNewestInOrder(t *testing.T) {
	feed := NewFeed(3)
	for i := 1; i <= 5; i++ {
		feed.SetFrame(i * 10)
		feed.Record(arcade.SelectionChanged{Count: i})
	}
	got := feed.Recent()
	require.Len(t, got, 3)
	assert.Equal(t, 30, got[0].Frame)
	assert.Equal(t, "selection:changed count=5", got[2].Text)
	assert.Equal(t, arcade.KindSelectionChanged, got[2].Kind)
}

func TestFeed_ReceivesHostEvents(t *testing.T) {
	f := newFixture(t, nil)
	f.shell.HandleKey("Digit2")
	kinds := []arcade.EventKind{}
	for _, e := range f.feed.Recent() {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []arcade.EventKind{arcade.KindGameStarted}, kinds)
}

func TestOverlay_SetAndClear(t *testing.T) {
	var o Overlay
	o.SetLines("a", "b")
	assert.Equal(t, []string{"a", "b"}, o.Lines())
	o.Clear()
	assert.Empty(t, o.Lines())
}

func TestGameSize_LeavesRoomForFeed(t *testing.T) {
	w, h := GameSize(960, 640)
	assert.Equal(t, 960-FeedPanelWidth, w)
	assert.Equal(t, 640, h)
}

func TestRestore_StartsFallbackWithoutStore(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.shell.Restore(games.StarfieldName))
	name, h := f.host.Active()
	assert.Equal(t, games.StarfieldName, name)
	assert.True(t, h.IsRunning())
	assert.Equal(t, "mounted starfield", f.shell.Message())

	require.Error(t, f.shell.Restore("missing"))
	name, _ = f.host.Active()
	assert.Equal(t, games.StarfieldName, name)
}
