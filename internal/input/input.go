// Package input turns discrete key events into the per-frame control state
// read by the kinematic integrator.
package input

import (
	"fmt"
	"strings"
)

// Control is a logical driving control.
type Control string

const (
	Forward Control = "forward"
	Back    Control = "back"
	Left    Control = "left"
	Right   Control = "right"
)

// Controls lists every logical control.
var Controls = []Control{Forward, Back, Left, Right}

// ParseControl resolves a control name, case-insensitively.
func ParseControl(name string) (Control, error) {
	c := Control(strings.ToLower(strings.TrimSpace(name)))
	switch c {
	case Forward, Back, Left, Right:
		return c, nil
	}
	return "", fmt.Errorf("unknown control %q", name)
}

// State is a snapshot of which controls are held. The zero value has nothing held.
type State struct {
	Forward bool `json:"forward,omitempty" yaml:"forward,omitempty"`
	Back    bool `json:"back,omitempty" yaml:"back,omitempty"`
	Left    bool `json:"left,omitempty" yaml:"left,omitempty"`
	Right   bool `json:"right,omitempty" yaml:"right,omitempty"`
}

// Held returns a State with the given controls held.
func Held(controls ...Control) State {
	var s State
	for _, c := range controls {
		s.Set(c, true)
	}
	return s
}

// Set updates a single control.
func (s *State) Set(c Control, down bool) {
	switch c {
	case Forward:
		s.Forward = down
	case Back:
		s.Back = down
	case Left:
		s.Left = down
	case Right:
		s.Right = down
	}
}

// Get reports whether c is held.
func (s State) Get(c Control) bool {
	switch c {
	case Forward:
		return s.Forward
	case Back:
		return s.Back
	case Left:
		return s.Left
	case Right:
		return s.Right
	}
	return false
}

// Active returns the held controls in Controls order.
func (s State) Active() []Control {
	var out []Control
	for _, c := range Controls {
		if s.Get(c) {
			out = append(out, c)
		}
	}
	return out
}

// KeyEvent is a key going down (Press) or up.
type KeyEvent struct {
	Key   string
	Press bool
}

// KeyMap binds key names to controls. Key names are lower-cased.
type KeyMap map[string]Control

// DefaultKeyMap binds WASD and the arrow keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"w": Forward, "arrowup": Forward,
		"s": Back, "arrowdown": Back,
		"a": Left, "arrowleft": Left,
		"d": Right, "arrowright": Right,
	}
}

// Tracker folds key events into a State. The most recent event for a key wins;
// a control is held while any key bound to it is down.
type Tracker struct {
	keys KeyMap
	down map[string]bool
}

// NewTracker returns a Tracker using keys, or DefaultKeyMap if keys is nil.
func NewTracker(keys KeyMap) *Tracker {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	norm := make(KeyMap, len(keys))
	for k, c := range keys {
		norm[strings.ToLower(k)] = c
	}
	return &Tracker{keys: norm, down: make(map[string]bool)}
}

// Apply records ev. Events for unbound keys are ignored.
func (t *Tracker) Apply(ev KeyEvent) {
	key := strings.ToLower(ev.Key)
	if _, ok := t.keys[key]; !ok {
		return
	}
	t.down[key] = ev.Press
}

// Reset releases every key.
func (t *Tracker) Reset() {
	clear(t.down)
}

// State returns the current control snapshot.
func (t *Tracker) State() State {
	var s State
	for key, down := range t.down {
		if down {
			s.Set(t.keys[key], true)
		}
	}
	return s
}

// Input returns the current control snapshot for any frame, so a Tracker can
// drive a frame loop directly.
func (t *Tracker) Input(int) State { return t.State() }
