//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/0nxb/my-weather-app/internal/view"
	"github.com/0nxb/my-weather-app/internal/widget"
)

// Bind attaches a listener for every widget binding, plus the document-wide
// click that closes the recent list. The returned func detaches them.
func Bind(ctrl *widget.Controller, v *View) (release func()) {
	type listener struct {
		target js.Value
		event  string
		fn     js.Func
	}
	var listeners []listener

	listen := func(target js.Value, event string, fn js.Func) {
		target.Call("addEventListener", event, fn)
		listeners = append(listeners, listener{target, event, fn})
	}

	for _, b := range widget.Bindings {
		el, ok := v.element(b.Slot)
		if !ok {
			continue
		}
		name := b.Interaction
		listen(el, b.Event, js.FuncOf(func(_ js.Value, args []js.Value) any {
			var ev widget.Event
			if len(args) > 0 {
				if key := args[0].Get("key"); key.Type() == js.TypeString {
					ev.Key = key.String()
				}
			}
			ctrl.Trigger(name, ev)
			return nil
		}))
	}

	box, hasBox := v.element(view.SearchBox)
	listen(v.doc, "click", js.FuncOf(func(_ js.Value, args []js.Value) any {
		inside := true
		if hasBox && len(args) > 0 {
			inside = box.Call("contains", args[0].Get("target")).Bool()
		}
		ctrl.Trigger(widget.OutsideClick, widget.Event{Inside: inside})
		return nil
	}))

	return func() {
		for _, l := range listeners {
			l.target.Call("removeEventListener", l.event, l.fn)
			l.fn.Release()
		}
	}
}
