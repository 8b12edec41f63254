package optics

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrNoSuchElement = errors.New("no such element")
	ErrDuplicateID   = errors.New("duplicate element id")
)

// Offset of a duplicated element from its original
const duplicateOffset = 30

// Scene is the editable collection of placed elements.
//
// Every mutation bumps Version. Tracing reads a Snapshot, never the live scene.
type Scene struct {
	mu       sync.RWMutex
	elements []Element
	nextID   int
	version  uint64
}

func NewScene() *Scene {
	return &Scene{nextID: 1}
}

// Version changes whenever the scene is mutated
func (s *Scene) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}

// newID returns the next ID not in the scene or reserved. IDs are never reused, even after removal.
func (s *Scene) newID(reserved map[string]bool) string {
	for {
		id := fmt.Sprintf("el-%d", s.nextID)
		s.nextID++
		if _, err := s.index(id); err != nil && !reserved[id] {
			return id
		}
	}
}

// Place instantiates kind from its defaults at pos and returns a copy of it
func (s *Scene) Place(kind Kind, pos r2.Vec) (Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, err := NewElement(kind, "", pos)
	if err != nil {
		return nil, err
	}
	el.Place().ID = s.newID(nil)
	s.elements = append(s.elements, el)
	s.version++
	return el.Clone(), nil
}

// Add appends els in order, assigning IDs to those without one. Generated IDs skip every explicit
// ID in els, wherever it appears. Nothing is added if an explicit ID is already taken. The scene
// takes ownership of els.
func (s *Scene) Add(els ...Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	explicit := map[string]bool{}
	for _, el := range els {
		id := el.Place().ID
		if id == "" {
			continue
		}
		if _, err := s.index(id); err == nil || explicit[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		explicit[id] = true
	}
	if len(els) == 0 {
		return nil
	}
	for _, el := range els {
		if el.Place().ID == "" {
			el.Place().ID = s.newID(explicit)
		}
	}
	s.elements = append(s.elements, els...)
	s.version++
	return nil
}

func (s *Scene) index(id string) (int, error) {
	for i, el := range s.elements {
		if el.Place().ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrNoSuchElement, id)
}

// Find returns a copy of the element with the given ID
func (s *Scene) Find(id string) (Element, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	return s.elements[i].Clone(), nil
}

func (s *Scene) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.elements = append(s.elements[:i], s.elements[i+1:]...)
	s.version++
	return nil
}

// Duplicate copies an element next to the original and returns the copy
func (s *Scene) Duplicate(id string) (Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	clone := s.elements[i].Clone()
	p := clone.Place()
	p.ID = s.newID(nil)
	p.Position = r2.Add(p.Position, V(duplicateOffset, duplicateOffset))
	s.elements = append(s.elements, clone)
	s.version++
	return clone.Clone(), nil
}

func (s *Scene) update(id string, f func(Element) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index(id)
	if err != nil {
		return err
	}
	if err := f(s.elements[i]); err != nil {
		return err
	}
	s.version++
	return nil
}

// Rotate turns an element by delta radians, wrapping at a full turn
func (s *Scene) Rotate(id string, delta float64) error {
	return s.update(id, func(el Element) error {
		p := el.Place()
		p.Rotation = math.Mod(p.Rotation+delta, 2*math.Pi)
		return nil
	})
}

func (s *Scene) SetRotation(id string, rotation float64) error {
	return s.update(id, func(el Element) error {
		el.Place().Rotation = rotation
		return nil
	})
}

func (s *Scene) Move(id string, pos r2.Vec) error {
	return s.update(id, func(el Element) error {
		el.Place().Position = pos
		return nil
	})
}

func (s *Scene) Nudge(id string, dx, dy float64) error {
	return s.update(id, func(el Element) error {
		p := el.Place()
		p.Position = r2.Add(p.Position, V(dx, dy))
		return nil
	})
}

func (s *Scene) SetProperty(id, name string, value float64) error {
	return s.update(id, func(el Element) error {
		return el.SetProperty(name, value)
	})
}

func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = nil
	s.version++
}

// HitTest returns the topmost element whose pick radius contains pos
func (s *Scene) HitTest(pos r2.Vec) (Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.elements) - 1; i >= 0; i-- {
		el := s.elements[i]
		r := el.HitRadius()
		if r2.Norm2(r2.Sub(pos, el.Place().Position)) < r*r {
			return el.Clone(), true
		}
	}
	return nil, false
}

// Snapshot returns a deep copy of the elements in scene order, and the version it was taken at
func (s *Scene) Snapshot() ([]Element, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	elements := make([]Element, len(s.elements))
	for i, el := range s.elements {
		elements[i] = el.Clone()
	}
	return elements, s.version
}

// Stats is the statistics readout of a traced scene
type Stats struct {
	Sources  int
	Elements int
	Segments int
}

func (st Stats) String() string {
	return fmt.Sprintf("sources: %d | elements: %d | rays: %d", st.Sources, st.Elements, st.Segments)
}

// CountStats counts sources and optical elements in elements alongside the traced segments
func CountStats(elements []Element, segments []Segment) Stats {
	st := Stats{Segments: len(segments)}
	for _, el := range elements {
		if IsSource(el) {
			st.Sources++
		}
	}
	st.Elements = len(elements) - st.Sources
	return st
}

func (s *Scene) Stats(segments []Segment) Stats {
	elements, _ := s.Snapshot()
	return CountStats(elements, segments)
}
