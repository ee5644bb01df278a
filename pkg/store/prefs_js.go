//go:build js && wasm

package store

import "syscall/js"

// LocalStorage persists preferences in window.localStorage.
type LocalStorage struct {
	storage js.Value
}

// NewLocalStorage binds to window.localStorage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{storage: js.Global().Get("localStorage")}
}

func (l *LocalStorage) Get(key string) (string, bool) {
	v := l.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

func (l *LocalStorage) Set(key, value string) {
	l.storage.Call("setItem", key, value)
}
