package optics

import "sync"

// CachedTracer retraces a scene only when it has changed since the last trace. Passing a different
// scene always retraces.
type CachedTracer struct {
	Params TraceParams

	mu       sync.Mutex
	scene    *Scene
	version  uint64
	segments []Segment
	traces   int
}

func NewCachedTracer(params TraceParams) *CachedTracer {
	return &CachedTracer{Params: params}
}

// Segments returns the traced segments of the scene's current state.
//
// The returned slice is shared between callers until the scene changes and must not be modified.
func (c *CachedTracer) Segments(s *Scene) []Segment {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scene == s && c.version == s.Version() {
		return c.segments
	}
	elements, version := s.Snapshot()
	c.segments = Trace(elements, c.Params)
	c.scene, c.version = s, version
	c.traces++
	return c.segments
}

// Invalidate forces the next call to Segments to retrace
func (c *CachedTracer) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene = nil
}

// Traces counts how many times the scene has actually been traced
func (c *CachedTracer) Traces() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.traces
}
