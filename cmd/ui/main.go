//go:build js && wasm

// Package main initializes interactive frontend elements and runs as long as the webpage is open.
package main

import (
	"context"
	"sync"
	"syscall/js"
	"time"

	"github.com/jacobpatterson1549/selene-tiles/game/tile"
)

// main initializes the wasm code for the web dom and runs as long as the browser is open.
func main() {
	ctx := context.Background()
	ctx, cancelFunc := context.WithCancel(ctx)
	var wg sync.WaitGroup
	f := flags{
		catalog: tile.DefaultCatalog(),
		timeFunc: func() int64 {
			return time.Now().Unix()
		},
	}
	if err := f.initDom(ctx, &wg); err != nil {
		js.Global().Call("alert", "FATAL: "+err.Error())
		cancelFunc()
		wg.Wait()
		return
	}
	initBeforeUnloadFn(cancelFunc, &wg)
	wg.Wait() // BLOCKING
}

// initBeforeUnloadFn registers a function to cancel the context when the browser is about to close.
// This should trigger other dom functions to release.
func initBeforeUnloadFn(cancelFunc context.CancelFunc, wg *sync.WaitGroup) {
	wg.Add(1)
	var fn js.Func
	fn = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cancelFunc()
		fn.Release()
		wg.Done()
		return nil
	})
	global := js.Global()
	global.Call("addEventListener", "beforeunload", fn)
}
