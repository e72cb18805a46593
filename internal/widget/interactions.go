package widget

import "github.com/0nxb/my-weather-app/internal/view"

// Interaction names a user action a front end can report.
type Interaction string

const (
	Search       Interaction = "search"
	InputKey     Interaction = "input-key"
	Locate       Interaction = "locate"
	ToggleUnits  Interaction = "toggle-unit"
	FocusInput   Interaction = "focus-input"
	OutsideClick Interaction = "outside-click"
	SelectRecent Interaction = "select-recent"
)

// Event carries the details of an interaction that its handler needs.
type Event struct {
	Key    string // InputKey: the key that was released
	Inside bool   // OutsideClick: whether the click landed inside the search box
	City   string // SelectRecent
}

type Handler func(Event)

func (c *Controller) dispatchTable() map[Interaction]Handler {
	return map[Interaction]Handler{
		Search: func(Event) { c.submitInput() },
		InputKey: func(ev Event) {
			if ev.Key == "Enter" {
				c.submitInput()
			}
		},
		Locate:      func(Event) { c.locate() },
		ToggleUnits: func(Event) { c.toggleUnits() },
		FocusInput:  func(Event) { c.showRecent() },
		OutsideClick: func(ev Event) {
			if !ev.Inside {
				c.view.SetHidden(view.RecentSearches, true)
			}
		},
		SelectRecent: func(ev Event) { c.selectRecent(ev.City) },
	}
}

// Interactions lists every interaction the controller handles.
var Interactions = []Interaction{Search, InputKey, Locate, ToggleUnits, FocusInput, OutsideClick, SelectRecent}

// Binding ties a DOM event on a slot to the interaction it reports.
// OutsideClick is bound on the document and SelectRecent on each recent
// entry, so neither appears here.
type Binding struct {
	Slot        view.Slot
	Event       string
	Interaction Interaction
}

var Bindings = []Binding{
	{view.SearchButton, "click", Search},
	{view.CityInput, "keyup", InputKey},
	{view.LocationButton, "click", Locate},
	{view.UnitToggleButton, "click", ToggleUnits},
	{view.CityInput, "click", FocusInput},
}
