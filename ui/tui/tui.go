// Package tui draws the tile grid in a terminal.
// The grid is kept in an in-memory document that the view reads.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jacobpatterson1549/selene-tiles/ui/dom"
	"github.com/jacobpatterson1549/selene-tiles/ui/dom/virtual"
	"github.com/jacobpatterson1549/selene-tiles/ui/grid"
	"github.com/jacobpatterson1549/selene-tiles/ui/log"
)

// logLines is the number of recent log items shown.
const logLines = 3

type (
	// Model is the root application state for Bubble Tea.
	Model struct {
		doc    *virtual.Document
		answer *answer
		keys   keyMap
		help   help.Model
		styles styles

		// selected is the index of the selected tile in the grid.
		selected   int
		confirming bool
		width      int
	}

	// answer is the response to the reset question.
	// It is shared by copies of the model because the document asks it.
	answer struct {
		yes bool
	}
)

// New creates a model that draws the page.
// The page should be created by NewPage and initialized by a grid controller.
func New(doc *virtual.Document) Model {
	a := new(answer)
	doc.ConfirmFunc = func(message string) bool {
		return a.yes
	}
	return Model{
		doc:    doc,
		answer: a,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: defaultStyles(),
	}
}

// Run shows the model until the user quits or the context is done.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.confirming = false
			m.answer.yes = true
			m.element(grid.ResetID).Dispatch(dom.Click)
			m.answer.yes = false
		case key.Matches(msg, m.keys.No):
			m.confirming = false
		}
		return m, nil
	}
	tileCount := len(m.tiles())
	columns := m.columns()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.selected-columns >= 0 {
			m.selected -= columns
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected+columns < tileCount {
			m.selected += columns
		}
	case key.Matches(msg, m.keys.Left):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Right):
		if m.selected+1 < tileCount {
			m.selected++
		}
	case key.Matches(msg, m.keys.Toggle):
		if figure, ok := m.selectedTile(); ok {
			image := figure.Children()[0]
			image.Dispatch(dom.Click)
			m.follow(figure)
		}
	case key.Matches(msg, m.keys.Sort):
		figure, ok := m.selectedTile()
		sortUsed := m.element(grid.SortUsedID)
		sortUsed.SetProperty(dom.Checked, !sortUsed.Property(dom.Checked))
		sortUsed.Dispatch(dom.Change)
		if ok {
			m.follow(figure)
		}
	case key.Matches(msg, m.keys.Reset):
		if !m.element(grid.ResetID).Property(dom.Disabled) {
			m.confirming = true
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n\n")
	if logs := m.renderLog(); len(logs) != 0 {
		b.WriteString(logs)
		b.WriteString("\n")
	}
	switch {
	case m.confirming:
		b.WriteString(m.styles.Prompt.Render(grid.ResetMessage + " (y/n)"))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// renderHeader draws the counts and the sort checkbox.
func (m Model) renderHeader() string {
	inPile := m.element(grid.InPileCountID).TextContent()
	used := m.element(grid.UsedCountID).TextContent()
	checkbox := "[ ]"
	if m.element(grid.SortUsedID).Property(dom.Checked) {
		checkbox = "[x]"
	}
	parts := []string{
		m.styles.Title.Render("Tiles"),
		"In pile: " + m.styles.Count.Render(inPile),
		"Used: " + m.styles.Count.Render(used),
		checkbox + " Sort used last",
	}
	return strings.Join(parts, "   ")
}

// renderGrid draws the tiles in rows, in the order of the grid element.
func (m Model) renderGrid() string {
	tiles := m.tiles()
	columns := m.columns()
	var rows []string
	for i := 0; i < len(tiles); i += columns {
		end := i + columns
		if end > len(tiles) {
			end = len(tiles)
		}
		cells := make([]string, 0, columns)
		for j := i; j < end; j++ {
			cells = append(cells, m.renderTile(tiles[j], j == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderTile draws a tile figure.
func (m Model) renderTile(figure *virtual.Element, selected bool) string {
	used := tileUsed(figure)
	mark := "[ ]"
	if used {
		mark = "[x]"
	}
	text := mark + " " + tileLabel(figure)
	style := m.styles.Cell
	switch {
	case selected:
		style = m.styles.Selected
	case used:
		style = m.styles.Used
	}
	return style.Render(text)
}

// renderLog draws the most recent log items.
func (m Model) renderLog() string {
	e, ok := m.doc.ElementByID(log.ElementID)
	if !ok {
		return ""
	}
	items := e.(*virtual.Element).Children()
	if len(items) > logLines {
		items = items[len(items)-logLines:]
	}
	lines := make([]string, len(items))
	for i, item := range items {
		style, ok := m.styles.Log[item.Attribute("class")]
		if !ok {
			style = m.styles.Faint
		}
		lines[i] = style.Render(item.TextContent())
	}
	return strings.Join(lines, "\n")
}

// columns is the number of tiles drawn in each row.
func (m Model) columns() int {
	if m.width < cellWidth {
		return 4
	}
	return m.width / cellWidth
}

// tiles are the tile figures in the grid.
func (m Model) tiles() []*virtual.Element {
	return m.element(grid.GridID).Children()
}

// selectedTile is the figure of the selected tile.
func (m Model) selectedTile() (*virtual.Element, bool) {
	tiles := m.tiles()
	if m.selected < 0 || m.selected >= len(tiles) {
		return nil, false
	}
	return tiles[m.selected], true
}

// follow selects the figure after the grid is redrawn, which moves tiles when used tiles are sorted last.
func (m *Model) follow(figure *virtual.Element) {
	for i, t := range m.tiles() {
		if t == figure {
			m.selected = i
			return
		}
	}
}

// element finds the element of the page with the id.
// Panics if the page has no element with the id, which means the page was not created with NewPage.
func (m Model) element(id string) *virtual.Element {
	e, ok := m.doc.ElementByID(id)
	if !ok {
		panic("page has no element with id " + id)
	}
	return e.(*virtual.Element)
}

// tileUsed reads the used class of the tile figure.
func tileUsed(figure *virtual.Element) bool {
	for _, class := range strings.Fields(figure.Attribute("class")) {
		if class == "used" {
			return true
		}
	}
	return false
}

// tileLabel is the caption of the tile, or the name of its image if it has no caption.
func tileLabel(figure *virtual.Element) string {
	children := figure.Children()
	if len(children) > 1 {
		if caption := children[1].TextContent(); len(caption) != 0 {
			return caption
		}
	}
	src := children[0].Attribute("src")
	base := path.Base(src)
	return strings.TrimSuffix(base, path.Ext(base))
}
