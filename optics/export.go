package optics

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
)

// JSON schema types
type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SegmentJSON struct {
	Points     [2]PointJSON `json:"points"`
	Color      string       `json:"color"`
	Intensity  float64      `json:"intensity"`
	Wavelength *float64     `json:"wavelength,omitempty"`
	Bounces    int          `json:"bounces"`
	Source     string       `json:"source"`
	Escaped    bool         `json:"escaped,omitempty"`
}

type ElementJSON struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	Position   PointJSON  `json:"position"`
	Rotation   float64    `json:"rotation"` // degrees
	Properties Properties `json:"properties"`
}

type StatsJSON struct {
	Sources  int `json:"sources"`
	Elements int `json:"elements"`
	Rays     int `json:"rays"`
}

type TraceJSON struct {
	Elements []ElementJSON `json:"elements"`
	Segments []SegmentJSON `json:"segments"`
	Stats    StatsJSON     `json:"stats"`
	Energy   []float64     `json:"energyByBounce"`
}

// Conversion functions
func PointToJSON(v r2.Vec) PointJSON {
	return PointJSON{X: v.X, Y: v.Y}
}

func SegmentToJSON(s Segment) SegmentJSON {
	return SegmentJSON{
		Points:     [2]PointJSON{PointToJSON(s.From), PointToJSON(s.To)},
		Color:      s.Color.Hex(),
		Intensity:  s.Intensity,
		Wavelength: s.Wavelength,
		Bounces:    s.Bounces,
		Source:     s.SourceID,
		Escaped:    s.Escaped,
	}
}

func ElementToJSON(el Element) ElementJSON {
	p := el.Place()
	return ElementJSON{
		ID:         p.ID,
		Kind:       el.Kind(),
		Position:   PointToJSON(p.Position),
		Rotation:   p.Rotation * 180 / math.Pi,
		Properties: el.Properties(),
	}
}

func NewTraceJSON(elements []Element, segments []Segment) TraceJSON {
	stats := CountStats(elements, segments)
	out := TraceJSON{
		Elements: make([]ElementJSON, 0, len(elements)),
		Segments: make([]SegmentJSON, 0, len(segments)),
		Stats: StatsJSON{
			Sources:  stats.Sources,
			Elements: stats.Elements,
			Rays:     stats.Segments,
		},
		Energy: EnergyByBounce(segments),
	}
	for _, el := range elements {
		out.Elements = append(out.Elements, ElementToJSON(el))
	}
	for _, s := range segments {
		out.Segments = append(out.Segments, SegmentToJSON(s))
	}
	return out
}

// SaveTraceJSON writes the scene and its traced segments to a JSON file
func SaveTraceJSON(filename string, elements []Element, segments []Segment) error {
	data, err := json.MarshalIndent(NewTraceJSON(elements, segments), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling trace: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}
