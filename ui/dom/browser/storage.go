//go:build js && wasm

package browser

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/jacobpatterson1549/selene-tiles/db"
)

// LocalStorage stores values in the browser for the site.
type LocalStorage struct {
	storage js.Value
}

var _ db.Storage = new(LocalStorage)

// NewLocalStorage wraps window.localStorage.
func NewLocalStorage() (*LocalStorage, error) {
	storage := js.Global().Get("localStorage")
	if storage.IsNull() || storage.IsUndefined() {
		return nil, fmt.Errorf("creating local storage: browser has no local storage")
	}
	s := LocalStorage{
		storage: storage,
	}
	return &s, nil
}

// Get reads the value for the key.
func (s *LocalStorage) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.call("getItem", func() {
		item := s.storage.Call("getItem", key)
		if item.IsNull() || item.IsUndefined() {
			return
		}
		value, ok = item.String(), true
	})
	return
}

// Set writes the value for the key.  Quota errors thrown by the browser are returned.
func (s *LocalStorage) Set(ctx context.Context, key, value string) error {
	return s.call("setItem", func() {
		s.storage.Call("setItem", key, value)
	})
}

// Clear removes all keys of the site.
func (s *LocalStorage) Clear(ctx context.Context) error {
	return s.call("clear", func() {
		s.storage.Call("clear")
	})
}

// call runs the function, converting exceptions thrown by the browser into errors.
func (*LocalStorage) call(name string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("calling local storage %v: %w", name, recoverError(r))
		}
	}()
	fn()
	return nil
}
