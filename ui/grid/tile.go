// Package grid draws the tiles and tracks which ones are used.
package grid

import (
	"context"
	"strconv"

	"github.com/jacobpatterson1549/selene-tiles/game/tile"
	"github.com/jacobpatterson1549/selene-tiles/ui/dom"
)

type (
	// Tile is a tile drawn on the grid that can be used or in the pile.
	Tile struct {
		record   tile.Record
		ordinal  int
		used     bool
		listener Listener
		// element is the figure that contains the image and caption.
		element dom.Element
		image   dom.Element
	}

	// Listener is notified after tiles are marked as used or returned to the pile.
	Listener interface {
		UsedChanged(ctx context.Context, t *Tile, used bool) error
	}

	// ErrorLog displays errors to the user.
	ErrorLog interface {
		Error(text string)
	}
)

// newTile creates the elements for the tile.
func newTile(doc dom.Document, record tile.Record, ordinal int, used, source bool, listener Listener) *Tile {
	t := Tile{
		record:   record,
		ordinal:  ordinal,
		used:     used,
		listener: listener,
		element:  doc.CreateElement("figure"),
		image:    doc.CreateElement("img"),
	}
	t.image.SetAttribute("src", record.Path())
	t.element.AppendChild(t.image)
	figcaption := doc.CreateElement("figcaption")
	switch r := record.(type) {
	case tile.LandTile:
		b := doc.CreateElement("b")
		figcaption.AppendChild(b)
		if source {
			b.AppendText(r.Name)
			break
		}
		b.AppendText("(" + strconv.Itoa(r.Points) + ")")
		figcaption.AppendText(" " + r.Name)
	}
	t.element.AppendChild(figcaption)
	t.updateStyle()
	return &t
}

// Ordinal is the index of the tile in the catalog.
func (t *Tile) Ordinal() int {
	return t.ordinal
}

// Record is the tile that is drawn.
func (t *Tile) Record() tile.Record {
	return t.record
}

// Used determines if the tile is out of the pile.
func (t *Tile) Used() bool {
	return t.used
}

// Element is the figure the tile is drawn in.
func (t *Tile) Element() dom.Element {
	return t.element
}

// SetUsed changes the used state of the tile and notifies the listener.
// It panics if the tile is already in the state, which is a programming error.
func (t *Tile) SetUsed(ctx context.Context, used bool) error {
	if t.used == used {
		panic("tile " + strconv.Itoa(t.ordinal) + " already has used=" + strconv.FormatBool(used))
	}
	t.used = used
	t.updateStyle()
	return t.listener.UsedChanged(ctx, t, used)
}

// listenForClicks toggles the tile when its image is clicked.
// Errors from the listener are written to the log.
func (t *Tile) listenForClicks(ctx context.Context, log ErrorLog) {
	t.image.AddEventListener(dom.Click, func() {
		if err := t.SetUsed(ctx, !t.used); err != nil {
			log.Error(err.Error())
		}
	})
}

// updateStyle draws used tiles in grayscale.
func (t *Tile) updateStyle() {
	grayscale, class := "0%", "tile"
	if t.used {
		grayscale, class = "100%", "tile used"
	}
	t.image.SetAttribute("style", "filter: grayscale("+grayscale+");")
	t.element.SetAttribute("class", class)
}
