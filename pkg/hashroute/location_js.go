//go:build js && wasm

package hashroute

import "syscall/js"

// BrowserLocation is the Location backed by window.location and
// window.history.
type BrowserLocation struct {
	window js.Value
}

// NewBrowserLocation returns the Location for the current window.
func NewBrowserLocation() *BrowserLocation {
	return &BrowserLocation{window: js.Global().Get("window")}
}

// Hash returns window.location.hash.
func (l *BrowserLocation) Hash() string {
	return l.window.Get("location").Get("hash").String()
}

// SetHash assigns location.hash, or calls location.replace for a
// history-replacing update. Both raise hashchange when the value differs.
func (l *BrowserLocation) SetHash(hash string, replace bool) {
	location := l.window.Get("location")
	if replace {
		location.Call("replace", hash)
		return
	}
	location.Set("hash", hash)
}

// Back calls history.back.
func (l *BrowserLocation) Back() {
	l.window.Get("history").Call("back")
}

// Forward calls history.forward.
func (l *BrowserLocation) Forward() {
	l.window.Get("history").Call("forward")
}

// Listen attaches fn to the hashchange event.
func (l *BrowserLocation) Listen(fn func()) (stop func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	l.window.Call("addEventListener", "hashchange", cb)

	return func() {
		l.window.Call("removeEventListener", "hashchange", cb)
		cb.Release()
	}
}
