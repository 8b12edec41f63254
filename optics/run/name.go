package run

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"amber", "azure", "bright", "brilliant", "burning", "clear", "coherent", "crimson",
		"dappled", "dazzling", "dim", "faint", "flickering", "gleaming", "glowing", "golden",
		"hazy", "incandescent", "iridescent", "lucid", "luminous", "lustrous", "milky", "misty",
		"opal", "pale", "pearly", "polished", "prismatic", "radiant", "scarlet", "shimmering",
		"silver", "smoky", "sparkling", "spectral", "stray", "sunlit", "tinted", "twilight",
		"vivid", "violet", "wandering", "warm", "white", "wispy",
	}

	nouns = []string{
		"aurora", "beam", "caustic", "comet", "corona", "crystal", "dawn", "dusk",
		"ember", "facet", "firefly", "flare", "flash", "focus", "glare", "gleam",
		"glimmer", "glint", "glow", "halo", "horizon", "lantern", "lens", "lighthouse",
		"mirage", "mirror", "moon", "nebula", "pane", "photon", "prism", "rainbow",
		"ray", "reflection", "ripple", "shadow", "shard", "spark", "spectrum", "star",
		"sunbeam", "sunrise", "sunset", "twinkle", "wave", "window",
	}

	rng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenerateName creates a memorable run name in the format "adjective-noun"
func GenerateName() string {
	adj := adjectives[rng.Intn(len(adjectives))]
	noun := nouns[rng.Intn(len(nouns))]
	return adj + "-" + noun
}

// GenerateID makes a run name unique by appending the time it was created
func GenerateID() string {
	return GenerateName() + "-" + time.Now().UTC().Format("20060102-150405")
}
