package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jacobpatterson1549/selene-tiles/db/memory"
	"github.com/jacobpatterson1549/selene-tiles/db/state"
	"github.com/jacobpatterson1549/selene-tiles/game/tile"
	"github.com/jacobpatterson1549/selene-tiles/log/logtest"
	"github.com/jacobpatterson1549/selene-tiles/ui/grid"
	uilog "github.com/jacobpatterson1549/selene-tiles/ui/log"
)

// newTestModel creates a model of an initialized page of the default catalog.
func newTestModel(t *testing.T) (Model, *memory.Storage) {
	t.Helper()
	ctx := context.Background()
	doc := NewPage()
	storage := new(memory.Storage)
	store, err := state.NewStore(storage, logtest.DiscardLogger)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("initializing store: %v", err)
	}
	log := uilog.New(doc, func() int64 { return 0 })
	cfg := grid.Config{
		Catalog: tile.DefaultCatalog(),
	}
	g, err := cfg.NewController(doc, store, log)
	if err != nil {
		t.Fatalf("creating grid: %v", err)
	}
	if err := g.Init(ctx); err != nil {
		t.Fatalf("initializing grid: %v", err)
	}
	return New(doc), storage
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		m2, _ := m.Update(msg)
		var ok bool
		m, ok = m2.(Model)
		if !ok {
			t.Fatalf("wanted Model from update, got %T", m2)
		}
	}
	return m
}

func counts(m Model) (inPile, used string) {
	return m.element(grid.InPileCountID).TextContent(), m.element(grid.UsedCountID).TextContent()
}

func TestInitialView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"In pile:", "31", "Used:", "Tonga", "(5) Fidschi", "water_p", "Sort used last"} {
		if !strings.Contains(view, want) {
			t.Errorf("wanted view to contain %q:\n%v", want, view)
		}
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		width        int
		msgs         []tea.Msg
		wantSelected int
	}{
		{
			msgs:         []tea.Msg{runes("l"), runes("l")},
			wantSelected: 2,
		},
		{
			msgs:         []tea.Msg{tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}},
			wantSelected: 0,
		},
		{
			msgs:         []tea.Msg{runes("j")},
			wantSelected: 4,
		},
		{
			width:        cellWidth * 8,
			msgs:         []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}, runes("j"), runes("k")},
			wantSelected: 8,
		},
		{
			msgs:         []tea.Msg{runes("k")},
			wantSelected: 0,
		},
		{
			width:        cellWidth * 32,
			msgs:         []tea.Msg{runes("j")},
			wantSelected: 0,
		},
	}
	for i, test := range tests {
		m, _ := newTestModel(t)
		m = update(t, m, tea.WindowSizeMsg{Width: test.width, Height: 40})
		m = update(t, m, test.msgs...)
		if want, got := test.wantSelected, m.selected; want != got {
			t.Errorf("Test %v: wanted selected %v, got %v", i, want, got)
		}
	}
}

func TestToggle(t *testing.T) {
	m, storage := newTestModel(t)
	ctx := context.Background()
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if inPile, used := counts(m); inPile != "31" || used != "1" {
		t.Errorf("wanted source tile to ignore toggle, got counts %v/%v", inPile, used)
	}
	m = update(t, m, runes("l"), tea.KeyMsg{Type: tea.KeyEnter})
	if inPile, used := counts(m); inPile != "30" || used != "2" {
		t.Errorf("wanted tile to be used, got counts %v/%v", inPile, used)
	}
	if v, ok, _ := storage.Get(ctx, "used_1"); !ok || v != "true" {
		t.Errorf("wanted used_1 to be stored, got %q", v)
	}
	if !tileUsed(m.tiles()[1]) {
		t.Errorf("wanted selected tile figure to be marked used")
	}
}

func TestSort(t *testing.T) {
	m, storage := newTestModel(t)
	ctx := context.Background()
	m = update(t, m, runes("l"), runes(" "), runes("s"))
	if !m.element(grid.SortUsedID).Property("checked") {
		t.Errorf("wanted sort checkbox checked")
	}
	if v, _, _ := storage.Get(ctx, "sort_used"); v != "true" {
		t.Errorf("wanted sort preference stored, got %q", v)
	}
	tiles := m.tiles()
	if want, got := "(5) Fidschi", tileLabel(tiles[len(tiles)-1]); want != got {
		t.Errorf("wanted last tile to be %v, got %v", want, got)
	}
	if want, got := "Tonga", tileLabel(tiles[len(tiles)-2]); want != got {
		t.Errorf("wanted second to last tile to be %v, got %v", want, got)
	}
	m = update(t, m, runes("s"))
	if want, got := "Tonga", tileLabel(m.tiles()[0]); want != got {
		t.Errorf("wanted first tile to be %v after unsorting, got %v", want, got)
	}
}

func TestReset(t *testing.T) {
	tests := []struct {
		answer     tea.Msg
		wantInPile string
	}{
		{answer: runes("y"), wantInPile: "31"},
		{answer: runes("n"), wantInPile: "29"},
		{answer: tea.KeyMsg{Type: tea.KeyEsc}, wantInPile: "29"},
	}
	for i, test := range tests {
		m, _ := newTestModel(t)
		m = update(t, m, runes("l"), runes(" "), runes("l"), runes(" "), runes("r"))
		if !m.confirming {
			t.Errorf("Test %v: wanted reset to ask for confirmation", i)
		}
		if !strings.Contains(m.View(), grid.ResetMessage) {
			t.Errorf("Test %v: wanted view to ask reset question", i)
		}
		m = update(t, m, test.answer)
		if m.confirming {
			t.Errorf("Test %v: wanted confirmation closed", i)
		}
		if inPile, _ := counts(m); test.wantInPile != inPile {
			t.Errorf("Test %v: wanted in pile count %v, got %v", i, test.wantInPile, inPile)
		}
		if m.answer.yes {
			t.Errorf("Test %v: wanted answer cleared", i)
		}
	}
}

func TestResetDisabled(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("r"))
	if m.confirming {
		t.Errorf("wanted no confirmation when only the source tile is used")
	}
}

func TestHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Errorf("wanted full help shown")
	}
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Errorf("wanted quit command")
	}
}

func TestRenderLog(t *testing.T) {
	m, _ := newTestModel(t)
	log := uilog.New(m.doc, func() int64 { return 0 })
	for _, text := range []string{"one", "two", "three", "four"} {
		log.Error(text)
	}
	got := m.renderLog()
	if strings.Contains(got, "one") {
		t.Errorf("wanted oldest log item hidden:\n%v", got)
	}
	for _, want := range []string{"two", "three", "four"} {
		if !strings.Contains(got, want) {
			t.Errorf("wanted log to contain %q:\n%v", want, got)
		}
	}
}

func TestSelectionFollowsTile(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("s"), runes("l"), runes("l"))
	selected, ok := m.selectedTile()
	if !ok {
		t.Fatalf("wanted a selected tile")
	}
	label := tileLabel(selected)
	m = update(t, m, runes(" "))
	if want, got := len(m.tiles())-1, m.selected; want != got {
		t.Errorf("wanted used tile to stay selected at the end of the grid at %v, got %v", want, got)
	}
	if figure, _ := m.selectedTile(); tileLabel(figure) != label || !tileUsed(figure) {
		t.Errorf("wanted selected tile to be used %v, got %v", label, tileLabel(figure))
	}
	m = update(t, m, runes(" "))
	if want, got := 2, m.selected; want != got {
		t.Errorf("wanted tile back in the pile to stay selected at %v, got %v", want, got)
	}
	if figure, _ := m.selectedTile(); tileLabel(figure) != label || tileUsed(figure) {
		t.Errorf("wanted second toggle to undo the first on %v, got %v", label, tileLabel(figure))
	}
	if inPile, used := counts(m); inPile != "31" || used != "1" {
		t.Errorf("wanted counts restored, got %v/%v", inPile, used)
	}
}

func TestSelectionFollowsTileWhenSorting(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, runes("l"), runes(" "))
	selected, _ := m.selectedTile()
	m = update(t, m, runes("s"))
	if want, got := len(m.tiles())-1, m.selected; want != got {
		t.Errorf("wanted selection to move with the used tile to %v, got %v", want, got)
	}
	if figure, _ := m.selectedTile(); figure != selected {
		t.Errorf("wanted the same tile selected after sorting")
	}
	m = update(t, m, runes("s"))
	if want, got := 1, m.selected; want != got {
		t.Errorf("wanted selection back at %v after unsorting, got %v", want, got)
	}
}
