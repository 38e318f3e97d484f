//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/jacobpatterson1549/selene-tiles/db/state"
	"github.com/jacobpatterson1549/selene-tiles/game/tile"
	"github.com/jacobpatterson1549/selene-tiles/ui/dom/browser"
	"github.com/jacobpatterson1549/selene-tiles/ui/grid"
	"github.com/jacobpatterson1549/selene-tiles/ui/log"
)

// flags contains options for the the ui.
type flags struct {
	catalog  tile.Catalog
	timeFunc func() int64
}

// initDom creates, initializes, and links up dom components.
func (f flags) initDom(ctx context.Context, wg *sync.WaitGroup) error {
	doc := browser.NewDocument(ctx, wg)
	log := log.New(doc, f.timeFunc)
	storage, err := browser.NewLocalStorage()
	if err != nil {
		return err
	}
	store, err := state.NewStore(storage, log)
	if err != nil {
		return err
	}
	if err := store.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing stored tile state: %w", err)
	}
	cfg := grid.Config{
		Catalog: f.catalog,
	}
	g, err := cfg.NewController(doc, store, log)
	if err != nil {
		return err
	}
	if err := g.Init(ctx); err != nil {
		return err
	}
	return nil
}
