package interact

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jdginn/go-light-builder/optics"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type item struct {
	index   int
	segment optics.Segment
}

func (i item) Title() string {
	return fmt.Sprintf("#%d  %d bounces  %.3f", i.index, i.segment.Bounces, i.segment.Intensity)
}

func (i item) Description() string {
	light := "white"
	if i.segment.Wavelength != nil {
		light = fmt.Sprintf("%.0fnm", *i.segment.Wavelength)
	}
	desc := fmt.Sprintf("%s  %s  %.1fpx", i.segment.SourceID, light, i.segment.Length())
	if i.segment.Escaped {
		desc += "  escaped"
	}
	return desc
}

func (i item) FilterValue() string {
	return i.Title() + " " + i.Description()
}

type model struct {
	list     list.Model
	elements []optics.Element
	segments []optics.Segment
	view     *optics.View
	// PNG rewritten with the selected segment emphasised
	outPath string
	// Segment last drawn, -1 before the first render
	rendered int
	err      error
}

func newModel(elements []optics.Element, segments []optics.Segment, view *optics.View, outPath string) model {
	items := make([]list.Item, len(segments))
	for i, s := range segments {
		items[i] = item{index: i, segment: s}
	}
	m := model{
		list:     list.New(items, list.NewDefaultDelegate(), 0, 0),
		elements: elements,
		segments: segments,
		view:     view,
		outPath:  outPath,
		rendered: -1,
	}
	m.list.Title = optics.CountStats(elements, segments).String()
	return m
}

// render redraws the scene with the selected segment emphasised if the selection has changed
func (m *model) render() {
	selected, ok := m.list.SelectedItem().(item)
	if !ok || selected.index == m.rendered {
		return
	}
	m.view.Highlight = selected.index
	if err := optics.SavePNG(m.outPath, m.view.Render(m.elements, m.segments)); err != nil {
		m.err = err
		return
	}
	m.rendered = selected.index
	log.Debug("rendered segment", "index", selected.index, "path", m.outPath)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.render()
	if m.err != nil {
		return m, tea.Quit
	}
	return m, cmd
}

func (m model) View() string {
	return docStyle.Render(m.list.View())
}

// Browse lists the traced segments and redraws outPath with the selected one emphasised
func Browse(elements []optics.Element, segments []optics.Segment, view *optics.View, outPath string) error {
	if len(segments) == 0 {
		return fmt.Errorf("no segments to browse")
	}
	p := tea.NewProgram(newModel(elements, segments, view, outPath), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	if m, ok := final.(model); ok && m.err != nil {
		return fmt.Errorf("rendering selection: %w", m.err)
	}
	return nil
}
