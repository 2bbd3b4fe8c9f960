package arcade

// FrameFunc is called once per display refresh with the elapsed seconds.
type FrameFunc func(dt float64)

type frameEntry struct {
	fn        FrameFunc
	cancelled bool
}

// Scheduler is the host's per-frame callback list. All callbacks run on the
// host's update goroutine.
type Scheduler struct {
	entries []*frameEntry
}

// Request registers fn and returns its cancel function. cancel is idempotent
// and takes effect before the next Tick, including when called from inside a
// callback.
func (s *Scheduler) Request(fn FrameFunc) (cancel func()) {
	e := &frameEntry{fn: fn}
	s.entries = append(s.entries, e)
	return func() {
		e.cancelled = true
	}
}

// Tick runs every live callback once.
func (s *Scheduler) Tick(dt float64) {
	live := s.entries[:0]
	for _, e := range s.entries {
		if !e.cancelled {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = live

	// Callbacks may request more frames; those start next tick.
	n := len(s.entries)
	for i := 0; i < n; i++ {
		if e := s.entries[i]; !e.cancelled {
			e.fn(dt)
		}
	}
}

// Len is the number of live callbacks.
func (s *Scheduler) Len() int {
	n := 0
	for _, e := range s.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}
