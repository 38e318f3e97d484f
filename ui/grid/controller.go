package grid

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/jacobpatterson1549/selene-tiles/game/tile"
	"github.com/jacobpatterson1549/selene-tiles/ui/dom"
)

const (
	// GridID is the id of the element the tiles are drawn in.
	GridID = "grid-container"
	// InPileCountID is the id of the element that shows the number of tiles in the pile.
	InPileCountID = "in-pile-count"
	// UsedCountID is the id of the element that shows the number of used tiles.
	UsedCountID = "used-count"
	// SortUsedID is the id of the checkbox that moves used tiles to the end of the grid.
	SortUsedID = "sort-used"
	// ResetID is the id of the button that returns all tiles to the pile.
	ResetID = "reset"
	// ResetMessage is the question asked before the tiles are reset.
	ResetMessage = "Reset all tiles?"
)

type (
	// Controller draws the tiles and keeps their counts and order.
	Controller struct {
		doc     dom.Document
		store   Store
		log     ErrorLog
		catalog tile.Catalog
		// tiles are in the order they are drawn.
		tiles    []*Tile
		inPile   int
		used     int
		sortUsed bool
		elements elements
	}

	// Store persists the state of the tiles.
	Store interface {
		Used(ctx context.Context, ordinal int) bool
		SortUsed(ctx context.Context) bool
		SetUsed(ctx context.Context, ordinal int, used bool) error
		SetSortUsed(ctx context.Context, sortUsed bool) error
	}

	// Config contains the options to create a Controller.
	Config struct {
		// Catalog contains the tiles to draw.  The first tile is the source tile.
		Catalog tile.Catalog
	}

	// elements are the parts of the page the controller updates.
	elements struct {
		grid        dom.Element
		inPileCount dom.Element
		usedCount   dom.Element
		sortUsed    dom.Element
		reset       dom.Element
	}
)

// NewController creates a Controller.
func (cfg Config) NewController(doc dom.Document, store Store, log ErrorLog) (*Controller, error) {
	if err := cfg.validate(doc, store, log); err != nil {
		return nil, fmt.Errorf("creating grid controller: validation: %w", err)
	}
	c := Controller{
		doc:     doc,
		store:   store,
		log:     log,
		catalog: cfg.Catalog,
	}
	return &c, nil
}

// validate ensures the config can be used to create a controller.
func (cfg Config) validate(doc dom.Document, store Store, log ErrorLog) error {
	switch {
	case doc == nil:
		return fmt.Errorf("document required")
	case store == nil:
		return fmt.Errorf("store required")
	case log == nil:
		return fmt.Errorf("log required")
	}
	if err := cfg.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

// Init creates the tiles from the stored state, draws them, and registers the event listeners of the page.
// It should only be called once.
func (c *Controller) Init(ctx context.Context) error {
	if err := c.findElements(); err != nil {
		return fmt.Errorf("initializing grid: %w", err)
	}
	c.tiles = make([]*Tile, len(c.catalog))
	c.inPile, c.used = 0, 0
	for ordinal, record := range c.catalog {
		source := c.catalog.IsSource(ordinal)
		used := source || c.store.Used(ctx, ordinal)
		t := newTile(c.doc, record, ordinal, used, source, c)
		if !source {
			t.listenForClicks(ctx, c.log)
		}
		c.tiles[ordinal] = t
		if used {
			c.used++
		} else {
			c.inPile++
		}
	}
	c.updateCounts()
	c.sortUsed = c.store.SortUsed(ctx)
	c.elements.sortUsed.SetProperty(dom.Checked, c.sortUsed)
	c.sortTiles()
	c.render()
	c.elements.sortUsed.AddEventListener(dom.Change, func() {
		sortUsed := c.elements.sortUsed.Property(dom.Checked)
		if err := c.SortUsedChanged(ctx, sortUsed); err != nil {
			c.log.Error(err.Error())
		}
	})
	c.elements.reset.AddEventListener(dom.Click, func() {
		if err := c.Reset(ctx); err != nil {
			c.log.Error(err.Error())
		}
	})
	return nil
}

// findElements finds the elements of the page that the controller updates.
func (c *Controller) findElements() error {
	ids := []struct {
		id string
		e  *dom.Element
	}{
		{GridID, &c.elements.grid},
		{InPileCountID, &c.elements.inPileCount},
		{UsedCountID, &c.elements.usedCount},
		{SortUsedID, &c.elements.sortUsed},
		{ResetID, &c.elements.reset},
	}
	for _, e := range ids {
		element, ok := c.doc.ElementByID(e.id)
		if !ok {
			return fmt.Errorf("missing element with id %q", e.id)
		}
		*e.e = element
	}
	return nil
}

// UsedChanged reorders the tiles if used tiles are sorted last, updates the counts, and stores the state of the tile.
func (c *Controller) UsedChanged(ctx context.Context, t *Tile, used bool) error {
	if c.sortUsed {
		c.sortTiles()
		c.render()
	}
	if used {
		c.inPile--
		c.used++
	} else {
		c.inPile++
		c.used--
	}
	c.updateCounts()
	if err := c.store.SetUsed(ctx, t.ordinal, used); err != nil {
		return fmt.Errorf("saving tile %v: %w", t.ordinal, err)
	}
	return nil
}

// SortUsedChanged redraws the tiles in the new order and stores the preference.
func (c *Controller) SortUsedChanged(ctx context.Context, sortUsed bool) error {
	c.sortUsed = sortUsed
	c.sortTiles()
	c.render()
	if err := c.store.SetSortUsed(ctx, sortUsed); err != nil {
		return fmt.Errorf("saving sort preference: %w", err)
	}
	return nil
}

// Reset returns all used tiles to the pile if the user confirms.
// Nothing is changed if the user declines.
// Tiles after a tile that cannot be saved are not reset.
func (c *Controller) Reset(ctx context.Context) error {
	if !c.doc.Confirm(ResetMessage) {
		return nil
	}
	tiles := make([]*Tile, len(c.tiles))
	copy(tiles, c.tiles)
	for _, t := range tiles {
		if c.catalog.IsSource(t.ordinal) || !t.used {
			continue
		}
		if err := t.SetUsed(ctx, false); err != nil {
			return fmt.Errorf("resetting tiles: %w", err)
		}
	}
	c.elements.reset.SetProperty(dom.Disabled, true)
	return nil
}

// Tiles are the tiles in the order they are drawn.
func (c *Controller) Tiles() []*Tile {
	tiles := make([]*Tile, len(c.tiles))
	copy(tiles, c.tiles)
	return tiles
}

// Counts are the number of tiles in the pile and the number that are used.
func (c *Controller) Counts() (inPile, used int) {
	return c.inPile, c.used
}

// SortUsed determines if used tiles are drawn after the tiles in the pile.
func (c *Controller) SortUsed() bool {
	return c.sortUsed
}

// sortTiles orders the tiles by ordinal.  If used tiles are sorted, tiles in the pile are first.
func (c *Controller) sortTiles() {
	sort.Slice(c.tiles, func(i, j int) bool {
		a, b := c.tiles[i], c.tiles[j]
		if c.sortUsed && a.used != b.used {
			return !a.used
		}
		return a.ordinal < b.ordinal
	})
}

// render replaces the tiles in the grid with the tiles in their current order.
func (c *Controller) render() {
	dom.RemoveChildren(c.elements.grid)
	for _, t := range c.tiles {
		c.elements.grid.AppendChild(t.element)
	}
}

// updateCounts displays the counts and disables the reset button if only the source tile is used.
func (c *Controller) updateCounts() {
	c.elements.inPileCount.SetTextContent(strconv.Itoa(c.inPile))
	c.elements.usedCount.SetTextContent(strconv.Itoa(c.used))
	c.elements.reset.SetProperty(dom.Disabled, c.used == 1)
}
