package arcade

// Buffer is a graphics resource that must be released explicitly: an
// offscreen image, a vertex buffer, a render target.
type Buffer interface {
	Deallocate()
}

// Resources is everything one mounted module owns. Release tears it all down
// in one place: release hooks run newest first (frame cancels, listener
// detaches, surface hand-back), then every buffer is deallocated.
type Resources struct {
	buffers  []Buffer
	hooks    []func()
	released bool
}

// Track takes ownership of b. A buffer tracked after Release is freed at
// once so nothing can leak past disposal.
func (r *Resources) Track(b Buffer) Buffer {
	if b == nil {
		return nil
	}
	if r.released {
		b.Deallocate()
		return b
	}
	r.buffers = append(r.buffers, b)
	return b
}

// OnRelease registers fn to run during Release. Registering after Release
// runs fn immediately.
func (r *Resources) OnRelease(fn func()) {
	if fn == nil {
		return
	}
	if r.released {
		fn()
		return
	}
	r.hooks = append(r.hooks, fn)
}

// Outstanding is the number of buffers and hooks not yet released.
func (r *Resources) Outstanding() int {
	return len(r.buffers) + len(r.hooks)
}

// Released reports whether Release has run.
func (r *Resources) Released() bool { return r.released }

// Release frees everything exactly once. Further calls are no-ops.
func (r *Resources) Release() {
	if r.released {
		return
	}
	r.released = true
	for i := len(r.hooks) - 1; i >= 0; i-- {
		r.hooks[i]()
	}
	r.hooks = nil
	for _, b := range r.buffers {
		b.Deallocate()
	}
	r.buffers = nil
}
