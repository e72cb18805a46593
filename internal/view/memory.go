package view

import "sync"

type ChildKind int

const (
	LabelChild ChildKind = iota
	ActionChild
	CardChild
)

type Child struct {
	Kind     ChildKind
	Text     string
	Card     ForecastCard
	activate func()
}

type Image struct {
	Src string
	Alt string
}

// MemoryView is a View that keeps every slot in memory. The terminal front
// end prints it, and tests inspect it.
type MemoryView struct {
	mu       sync.Mutex
	text     map[Slot]string
	values   map[Slot]string
	images   map[Slot]Image
	hidden   map[Slot]bool
	children map[Slot][]Child
}

func NewMemoryView() *MemoryView {
	v := &MemoryView{
		text:     make(map[Slot]string),
		values:   make(map[Slot]string),
		images:   make(map[Slot]Image),
		hidden:   make(map[Slot]bool),
		children: make(map[Slot][]Child),
	}
	for _, s := range InitiallyHidden {
		v.hidden[s] = true
	}
	return v
}

func (v *MemoryView) SetText(slot Slot, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.text[slot] = text
}

func (v *MemoryView) Text(slot Slot) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.text[slot]
}

func (v *MemoryView) Value(slot Slot) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values[slot]
}

func (v *MemoryView) SetValue(slot Slot, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[slot] = value
}

func (v *MemoryView) SetImage(slot Slot, src, alt string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.images[slot] = Image{Src: src, Alt: alt}
}

func (v *MemoryView) Image(slot Slot) Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.images[slot]
}

func (v *MemoryView) SetHidden(slot Slot, hidden bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hidden[slot] = hidden
}

func (v *MemoryView) Hidden(slot Slot) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hidden[slot]
}

func (v *MemoryView) Clear(slot Slot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.children, slot)
}

func (v *MemoryView) AppendLabel(slot Slot, text string) {
	v.append(slot, Child{Kind: LabelChild, Text: text})
}

func (v *MemoryView) AppendAction(slot Slot, label string, activate func()) {
	v.append(slot, Child{Kind: ActionChild, Text: label, activate: activate})
}

func (v *MemoryView) AppendForecastCard(slot Slot, card ForecastCard) {
	v.append(slot, Child{Kind: CardChild, Card: card})
}

func (v *MemoryView) append(slot Slot, c Child) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.children[slot] = append(v.children[slot], c)
}

func (v *MemoryView) Children(slot Slot) []Child {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Child, len(v.children[slot]))
	copy(out, v.children[slot])
	return out
}

// Actions returns the labels of the action children of slot, in order.
func (v *MemoryView) Actions(slot Slot) []string {
	var out []string
	for _, c := range v.Children(slot) {
		if c.Kind == ActionChild {
			out = append(out, c.Text)
		}
	}
	return out
}

// Activate runs the i-th action child of slot, as a click would. It reports
// false when there is no such action.
func (v *MemoryView) Activate(slot Slot, i int) bool {
	var actions []Child
	for _, c := range v.Children(slot) {
		if c.Kind == ActionChild {
			actions = append(actions, c)
		}
	}
	if i < 0 || i >= len(actions) || actions[i].activate == nil {
		return false
	}
	actions[i].activate()
	return true
}

var _ View = (*MemoryView)(nil)
