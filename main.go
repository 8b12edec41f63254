package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/jdginn/go-light-builder/interact"
	"github.com/jdginn/go-light-builder/optics"
	"github.com/jdginn/go-light-builder/optics/config"
	"github.com/jdginn/go-light-builder/optics/run"
)

const (
	defaultWidth  = 1200
	defaultHeight = 800
)

type Globals struct {
	Debug   bool   `help:"log debug output"`
	RunsDir string `name:"runs-dir" default:"runs" help:"directory new run directories are created in"`
}

var CLI struct {
	Globals

	Trace    TraceCmd    `cmd:"" help:"Trace a scene and write its segments as JSON"`
	Render   RenderCmd   `cmd:"" help:"Render a traced scene to PNG"`
	Plot     PlotCmd     `cmd:"" help:"Plot the light carried at each bounce depth"`
	Validate ValidateCmd `cmd:"" help:"Check a scene file without tracing it"`
	Browse   BrowseCmd   `cmd:"" help:"Step through the traced segments of a scene"`
	Defaults DefaultsCmd `cmd:"" help:"Print the built-in element templates"`
}

// loadScene reads, validates and traces a scene file. dark forces the dark theme.
func loadScene(path string, dark bool) (*config.SceneConfig, []optics.Element, []optics.Segment, error) {
	c, err := config.LoadFromFile(path, config.LoadOptions{ResolvePaths: true, MergeFiles: true})
	if err != nil {
		return nil, nil, nil, err
	}
	if dark {
		c.Render.Theme = config.ThemeDark
	}
	if errs := c.Validate(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, config.FormatValidationErrors(errs))
		return nil, nil, nil, fmt.Errorf("%s has %d validation errors", path, len(errs))
	}
	scene, err := c.Build()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building scene: %w", err)
	}
	elements, _ := scene.Snapshot()
	segments := optics.Trace(elements, c.Params())

	stats := optics.CountStats(elements, segments)
	log.Info("traced scene", "sources", stats.Sources, "elements", stats.Elements, "rays", stats.Segments,
		"escaped", optics.EscapingSegments(segments), "energy", optics.TotalEnergy(segments))
	return c, elements, segments, nil
}

// newRun creates the run directory for a command and keeps a copy of its scene file there
func newRun(g *Globals, scenePath string) (*run.Dir, error) {
	dir, err := run.Create(g.RunsDir)
	if err != nil {
		return nil, err
	}
	if err := dir.CopyFile(scenePath); err != nil {
		return nil, err
	}
	log.Info("created run", "id", dir.ID)
	return dir, nil
}

type TraceCmd struct {
	Scene string `arg:"" type:"existingfile" help:"scene file to trace"`
}

func (c TraceCmd) Run(g *Globals) error {
	sc, elements, segments, err := loadScene(c.Scene, false)
	if err != nil {
		return err
	}
	dir, err := newRun(g, c.Scene)
	if err != nil {
		return err
	}

	resolved := config.FromElements(elements)
	resolved.Simulation = sc.Simulation
	resolved.Render = sc.Render
	if err := config.SaveToFile(resolved, dir.FilePath("resolved.yaml")); err != nil {
		return err
	}
	if err := optics.SaveTraceJSON(dir.FilePath("trace.json"), elements, segments); err != nil {
		return err
	}
	log.Info("wrote trace", "path", dir.FilePath("trace.json"))
	return nil
}

type RenderCmd struct {
	Scene     string `arg:"" type:"existingfile" help:"scene file to render"`
	Width     int    `help:"image width in pixels, overrides the scene file"`
	Height    int    `help:"image height in pixels, overrides the scene file"`
	Dark      bool   `help:"use the dark theme"`
	Highlight int    `default:"-1" help:"index of a segment to emphasise"`
}

func (c RenderCmd) Run(g *Globals) error {
	sc, elements, segments, err := loadScene(c.Scene, c.Dark)
	if err != nil {
		return err
	}
	dir, err := newRun(g, c.Scene)
	if err != nil {
		return err
	}

	w, h := sc.Render.Size(defaultWidth, defaultHeight)
	if c.Width > 0 {
		w = c.Width
	}
	if c.Height > 0 {
		h = c.Height
	}
	view := optics.NewView(w, h, sc.Render.Dark())
	view.Highlight = c.Highlight

	if err := optics.SavePNG(dir.FilePath("scene.png"), view.Render(elements, segments)); err != nil {
		return fmt.Errorf("saving render: %w", err)
	}
	log.Info("wrote render", "path", dir.FilePath("scene.png"), "width", w, "height", h)
	return nil
}

type PlotCmd struct {
	Scene  string `arg:"" type:"existingfile" help:"scene file to analyse"`
	Width  int    `default:"600" help:"plot width in points"`
	Height int    `default:"400" help:"plot height in points"`
}

func (c PlotCmd) Run(g *Globals) error {
	_, _, segments, err := loadScene(c.Scene, false)
	if err != nil {
		return err
	}
	dir, err := newRun(g, c.Scene)
	if err != nil {
		return err
	}
	if err := optics.PlotEnergy(dir.FilePath("energy.png"), c.Width, c.Height, segments); err != nil {
		return err
	}
	log.Info("wrote plot", "path", dir.FilePath("energy.png"))
	return nil
}

type ValidateCmd struct {
	Scene string `arg:"" type:"existingfile" help:"scene file to check"`
}

func (c ValidateCmd) Run() error {
	sc, err := config.LoadFromFile(c.Scene, config.LoadOptions{ResolvePaths: true, MergeFiles: true})
	if err != nil {
		return err
	}
	if errs := sc.Validate(); len(errs) > 0 {
		fmt.Print(config.FormatValidationErrors(errs))
		return fmt.Errorf("%s has %d validation errors", c.Scene, len(errs))
	}
	log.Info("scene is valid", "path", c.Scene, "elements", len(sc.Elements))
	return nil
}

type BrowseCmd struct {
	Scene string `arg:"" type:"existingfile" help:"scene file to browse"`
	Dark  bool   `help:"use the dark theme"`
}

func (c BrowseCmd) Run(g *Globals) error {
	sc, elements, segments, err := loadScene(c.Scene, c.Dark)
	if err != nil {
		return err
	}
	dir, err := newRun(g, c.Scene)
	if err != nil {
		return err
	}
	w, h := sc.Render.Size(defaultWidth, defaultHeight)
	view := optics.NewView(w, h, sc.Render.Dark())
	log.Info("rendering selection", "path", dir.FilePath("browse.png"))
	return interact.Browse(elements, segments, view, dir.FilePath("browse.png"))
}

type DefaultsCmd struct{}

func (c DefaultsCmd) Run() error {
	data, err := yaml.Marshal(struct {
		Defaults config.Defaults `yaml:"defaults"`
	}{config.BuiltinDefaults()})
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("lightbuilder"),
		kong.Description("Trace light through 2D optical scenes."),
		kong.UsageOnError(),
	)
	if CLI.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if err := ctx.Run(&CLI.Globals); err != nil {
		log.Fatal(err)
	}
}
