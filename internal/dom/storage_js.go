//go:build js && wasm

package dom

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"
)

// LocalStorage keeps entries in the browser's localStorage.
type LocalStorage struct {
	storage js.Value
}

func NewLocalStorage() (*LocalStorage, error) {
	s := js.Global().Get("localStorage")
	if s.IsUndefined() || s.IsNull() {
		return nil, errors.New("localStorage is not available")
	}
	return &LocalStorage{storage: s}, nil
}

func (s *LocalStorage) Get(_ context.Context, key string) (value string, ok bool, err error) {
	defer recoverJSError(&err)
	v := s.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false, nil
	}
	return v.String(), true, nil
}

// Set stores value. A full quota or disabled storage comes back as an error.
func (s *LocalStorage) Set(_ context.Context, key, value string) (err error) {
	defer recoverJSError(&err)
	s.storage.Call("setItem", key, value)
	return nil
}

func (s *LocalStorage) Close() error { return nil }

func recoverJSError(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if jsErr, ok := r.(js.Error); ok {
		*err = fmt.Errorf("localStorage: %w", jsErr)
		return
	}
	panic(r)
}
