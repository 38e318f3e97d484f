// Package main runs the tile tracker in the terminal after configuring it from supplied or standard arguments
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacobpatterson1549/selene-tiles/db"
	"github.com/jacobpatterson1549/selene-tiles/db/state"
	"github.com/jacobpatterson1549/selene-tiles/game/tile"
	"github.com/jacobpatterson1549/selene-tiles/ui/dom"
	"github.com/jacobpatterson1549/selene-tiles/ui/grid"
	uilog "github.com/jacobpatterson1549/selene-tiles/ui/log"
	"github.com/jacobpatterson1549/selene-tiles/ui/tui"
)

func main() {
	os.Exit(run())
}

// run configures and runs the terminal ui, returning the exit code.
func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	m, err := newMainFlags(os.Args, os.LookupEnv, os.ReadFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "selene-tiles: %v\n", err)
		return 1
	}
	log, logFile, err := m.newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "selene-tiles: %v\n", err)
		return 1
	}
	defer logFile.Close()
	if err := m.runTUI(ctx); err != nil {
		log.Printf("running tile tracker: %v", err)
		fmt.Fprintf(os.Stderr, "selene-tiles: %v\n", err)
		return 1
	}
	log.Println("tile tracker stopped successfully")
	return 0
}

// runTUI creates the storage and grid and draws them until the user quits.
func (m mainFlags) runTUI(ctx context.Context) error {
	storage, closeFunc, err := m.createStorage(ctx)
	if err != nil {
		return fmt.Errorf("creating %v storage: %w", m.storage, err)
	}
	defer closeFunc(context.Background())
	doc := tui.NewPage()
	timeFunc := func() int64 {
		return time.Now().Unix()
	}
	log := uilog.New(doc, timeFunc)
	g, err := newGrid(ctx, doc, storage, log)
	if err != nil {
		return err
	}
	if err := g.Init(ctx); err != nil {
		return err
	}
	model := tui.New(doc)
	return tui.Run(ctx, model)
}

// newGrid creates a grid of the default catalog whose state is kept in the storage.
func newGrid(ctx context.Context, doc dom.Document, storage db.Storage, log *uilog.Log) (*grid.Controller, error) {
	store, err := state.NewStore(storage, log)
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initializing stored tile state: %w", err)
	}
	cfg := grid.Config{
		Catalog: tile.DefaultCatalog(),
	}
	return cfg.NewController(doc, store, log)
}
