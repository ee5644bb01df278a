//go:build js && wasm

package app

import (
	"syscall/js"

	"github.com/vango-dev/marquee/pkg/store"
)

// DOMMount renders into an element's innerHTML.
type DOMMount struct {
	el js.Value
}

// NewDOMMount binds to the element with the given id.
func NewDOMMount(id string) *DOMMount {
	return &DOMMount{el: js.Global().Get("document").Call("getElementById", id)}
}

// Render implements Mount. Focus in the search box survives the repaint
// so typing continues across the navigation to the results view.
func (m *DOMMount) Render(html string) {
	active := js.Global().Get("document").Get("activeElement")
	keepSearch := !active.IsNull() &&
		m.el.Call("contains", active).Bool() &&
		active.Get("name").String() == "q"

	m.el.Set("innerHTML", html)

	if !keepSearch {
		return
	}
	input := m.el.Call("querySelector", `input[name="q"]`)
	if input.IsNull() {
		return
	}
	input.Call("focus")
	end := input.Get("value").Get("length")
	input.Call("setSelectionRange", end, end)
}

// BindDOM delegates clicks on [data-action] buttons, input on the search
// box and changes to the list filters to the app. The returned function removes the listeners.
func (a *App) BindDOM(root *DOMMount) (unbind func()) {
	onClick := js.FuncOf(func(this js.Value, args []js.Value) any {
		target := args[0].Get("target").Call("closest", "[data-action]")
		if target.IsNull() {
			return nil
		}
		eventID := target.Get("dataset").Get("event").String()
		switch target.Get("dataset").Get("action").String() {
		case "subscribe":
			a.Subscribe(eventID)
		case "unsubscribe":
			a.Unsubscribe(eventID)
		case "refresh":
			a.Refresh(eventID)
		}
		return nil
	})

	onInput := js.FuncOf(func(this js.Value, args []js.Value) any {
		target := args[0].Get("target")
		if target.Get("name").String() == "q" {
			a.Search(target.Get("value").String())
		}
		return nil
	})

	onChange := js.FuncOf(func(this js.Value, args []js.Value) any {
		target := args[0].Get("target")
		switch target.Get("name").String() {
		case "sort":
			a.SetSort(store.SortOrder(target.Get("value").String()))
		case "city":
			a.SetCity(target.Get("value").String())
		case "hideSoldOut":
			a.SetHideSoldOut(target.Get("checked").Bool())
		}
		return nil
	})

	onSubmit := js.FuncOf(func(this js.Value, args []js.Value) any {
		args[0].Call("preventDefault")
		return nil
	})

	root.el.Call("addEventListener", "click", onClick)
	root.el.Call("addEventListener", "input", onInput)
	root.el.Call("addEventListener", "change", onChange)
	root.el.Call("addEventListener", "submit", onSubmit)

	return func() {
		root.el.Call("removeEventListener", "click", onClick)
		root.el.Call("removeEventListener", "input", onInput)
		root.el.Call("removeEventListener", "change", onChange)
		root.el.Call("removeEventListener", "submit", onSubmit)
		onClick.Release()
		onInput.Release()
		onChange.Release()
		onSubmit.Release()
	}
}
