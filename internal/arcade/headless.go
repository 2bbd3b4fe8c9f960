package arcade

import (
	"errors"
	"sync"
)

// ErrAllocation is returned by a HeadlessSurface told to fail.
var ErrAllocation = errors.New("arcade: buffer allocation failed")

// HeadlessSurface is an in-memory Surface that counts buffers so leaks and
// double frees show up in tests and headless runs.
type HeadlessSurface struct {
	W, H int
	// FailAt makes the n-th Allocate call (1-based) fail; 0 never fails.
	FailAt int

	mu          sync.Mutex
	allocations int
	live        int
	doubleFrees int
	presented   Buffer
}

// NewHeadlessSurface creates a surface of w x h pixels.
func NewHeadlessSurface(w, h int) *HeadlessSurface {
	return &HeadlessSurface{W: w, H: h}
}

type headlessBuffer struct {
	s     *HeadlessSurface
	w, h  int
	freed bool
}

func (b *headlessBuffer) Deallocate() {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.freed {
		b.s.doubleFrees++
		return
	}
	b.freed = true
	b.s.live--
}

func (s *HeadlessSurface) Size() (int, int) { return s.W, s.H }

func (s *HeadlessSurface) Allocate(w, h int) (Buffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allocations++
	if s.FailAt > 0 && s.allocations == s.FailAt {
		return nil, ErrAllocation
	}
	s.live++
	return &headlessBuffer{s: s, w: w, h: h}, nil
}

func (s *HeadlessSurface) Present(b Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presented = b
}

// Live is the number of allocated, not yet freed buffers.
func (s *HeadlessSurface) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// DoubleFrees counts Deallocate calls on already freed buffers.
func (s *HeadlessSurface) DoubleFrees() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doubleFrees
}

// Presented returns the buffer currently shown.
func (s *HeadlessSurface) Presented() Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presented
}

// HeadlessOverlay keeps the last lines set on it.
type HeadlessOverlay struct {
	lines []string
}

func (o *HeadlessOverlay) SetLines(lines ...string) {
	o.lines = append(o.lines[:0], lines...)
}

func (o *HeadlessOverlay) Clear() { o.lines = o.lines[:0] }

// Lines returns the current overlay text.
func (o *HeadlessOverlay) Lines() []string { return o.lines }
