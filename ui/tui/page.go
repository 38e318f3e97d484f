package tui

import (
	"github.com/jacobpatterson1549/selene-tiles/ui/dom/virtual"
	"github.com/jacobpatterson1549/selene-tiles/ui/grid"
	"github.com/jacobpatterson1549/selene-tiles/ui/log"
)

// NewPage creates a document with the elements of the site's page.
func NewPage() *virtual.Document {
	doc := virtual.NewDocument()
	for _, e := range []struct {
		tag string
		id  string
	}{
		{"span", grid.InPileCountID},
		{"span", grid.UsedCountID},
		{"input", grid.SortUsedID},
		{"button", grid.ResetID},
		{"div", grid.GridID},
		{"ul", log.ElementID},
	} {
		element := doc.CreateElement(e.tag)
		element.SetAttribute("id", e.id)
		doc.Body.AppendChild(element)
	}
	return doc
}
