package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jdginn/go-light-builder/optics"
)

// Light is the energy one source delivers at one wavelength. Wavelength 0 is white light.
type Light struct {
	Source     string
	Wavelength float64
	Energy     float64
	Segments   int
	Escaped    int
	MaxBounces int
}

// Summarize groups segments by source and wavelength, ordered by source then red to violet
func Summarize(segments []optics.SegmentJSON) []Light {
	type key struct {
		source     string
		wavelength float64
	}
	byKey := map[key]*Light{}
	for _, s := range segments {
		k := key{source: s.Source}
		if s.Wavelength != nil {
			k.wavelength = *s.Wavelength
		}
		l, ok := byKey[k]
		if !ok {
			l = &Light{Source: k.source, Wavelength: k.wavelength}
			byKey[k] = l
		}
		l.Energy += s.Intensity
		l.Segments++
		if s.Escaped {
			l.Escaped++
		}
		l.MaxBounces = max(l.MaxBounces, s.Bounces)
	}

	result := make([]Light, 0, len(byKey))
	for _, l := range byKey {
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Source != result[j].Source {
			return result[i].Source < result[j].Source
		}
		return result[i].Wavelength > result[j].Wavelength
	})
	return result
}

func writeSummary(w io.Writer, lights []Light) {
	for _, l := range lights {
		light := "white"
		if l.Wavelength > 0 {
			light = fmt.Sprintf("%.0fnm", l.Wavelength)
		}
		fmt.Fprintf(w, "%s, %s, %.4f, %d segments, %d escaped, %d bounces\n",
			l.Source, light, l.Energy, l.Segments, l.Escaped, l.MaxBounces)
	}
}

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: trace_summary <trace.json> <output.txt>")
		os.Exit(1)
	}

	inFile := os.Args[1]
	outFile := os.Args[2]

	f, err := os.Open(inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open input file: %v\n", err)
		os.Exit(2)
	}
	defer f.Close()

	var trace optics.TraceJSON
	if err := json.NewDecoder(f).Decode(&trace); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot decode JSON: %v\n", err)
		os.Exit(3)
	}

	out, err := os.Create(outFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot create output file: %v\n", err)
		os.Exit(4)
	}
	defer out.Close()

	writeSummary(out, Summarize(trace.Segments))
}
