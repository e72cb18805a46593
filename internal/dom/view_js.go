//go:build js && wasm

package dom

import (
	"fmt"
	"syscall/js"

	"github.com/0nxb/my-weather-app/internal/view"
)

const hiddenClass = "hidden"

// View draws on the page's elements. Each slot is looked up once by id, the
// search box by its class.
type View struct {
	doc      js.Value
	elements map[view.Slot]js.Value
	funcs    map[view.Slot][]js.Func
}

func NewView(doc js.Value) (*View, error) {
	v := &View{
		doc:      doc,
		elements: make(map[view.Slot]js.Value, len(view.Slots)),
		funcs:    make(map[view.Slot][]js.Func),
	}
	for _, slot := range view.Slots {
		var el js.Value
		if slot == view.SearchBox {
			el = doc.Call("querySelector", ".search-box")
		} else {
			el = doc.Call("getElementById", string(slot))
		}
		if el.IsNull() || el.IsUndefined() {
			if slot == view.SearchBox {
				continue
			}
			return nil, fmt.Errorf("element %q not found", slot)
		}
		v.elements[slot] = el
	}
	return v, nil
}

func (v *View) element(slot view.Slot) (js.Value, bool) {
	el, ok := v.elements[slot]
	return el, ok
}

func (v *View) SetText(slot view.Slot, text string) {
	if el, ok := v.element(slot); ok {
		el.Set("textContent", text)
	}
}

func (v *View) Value(slot view.Slot) string {
	if el, ok := v.element(slot); ok {
		return el.Get("value").String()
	}
	return ""
}

func (v *View) SetValue(slot view.Slot, value string) {
	if el, ok := v.element(slot); ok {
		el.Set("value", value)
	}
}

func (v *View) SetImage(slot view.Slot, src, alt string) {
	if el, ok := v.element(slot); ok {
		el.Set("src", src)
		el.Set("alt", alt)
	}
}

func (v *View) SetHidden(slot view.Slot, hidden bool) {
	if el, ok := v.element(slot); ok {
		el.Get("classList").Call("toggle", hiddenClass, hidden)
	}
}

// Clear removes the children of slot and releases their click handlers.
func (v *View) Clear(slot view.Slot) {
	for _, fn := range v.funcs[slot] {
		fn.Release()
	}
	delete(v.funcs, slot)
	if el, ok := v.element(slot); ok {
		el.Set("textContent", "")
	}
}

func (v *View) AppendLabel(slot view.Slot, text string) {
	v.appendTo(slot, v.create("div", "recent-label", text))
}

func (v *View) AppendAction(slot view.Slot, label string, activate func()) {
	btn := v.create("button", "", label)
	btn.Set("type", "button")
	fn := js.FuncOf(func(js.Value, []js.Value) any {
		activate()
		return nil
	})
	v.funcs[slot] = append(v.funcs[slot], fn)
	btn.Call("addEventListener", "click", fn)
	v.appendTo(slot, btn)
}

func (v *View) AppendForecastCard(slot view.Slot, card view.ForecastCard) {
	el := v.create("div", "forecast-card", "")
	el.Call("appendChild", v.create("p", "date", card.Date))

	img := v.create("img", "", "")
	img.Set("src", card.IconURL)
	img.Set("alt", "icon")
	el.Call("appendChild", img)

	temps := v.create("div", "temp-range", "")
	temps.Call("appendChild", v.create("span", "min", card.Min))
	temps.Call("appendChild", v.create("span", "sep", "/"))
	temps.Call("appendChild", v.create("span", "max", card.Max))
	el.Call("appendChild", temps)

	v.appendTo(slot, el)
}

func (v *View) create(tag, class, text string) js.Value {
	el := v.doc.Call("createElement", tag)
	if class != "" {
		el.Set("className", class)
	}
	if text != "" {
		el.Set("textContent", text)
	}
	return el
}

func (v *View) appendTo(slot view.Slot, child js.Value) {
	if el, ok := v.element(slot); ok {
		el.Call("appendChild", child)
	}
}

var _ view.View = (*View)(nil)
