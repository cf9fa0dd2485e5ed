//go:build cgo

package window

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cxd309/race-engine/internal/input"
)

// keyboard turns ebiten key transitions into input.KeyEvents. Key names are
// ebiten's lower-cased ("w", "arrowup"), which match input.DefaultKeyMap.
type keyboard struct {
	tracker *input.Tracker
	keys    []ebiten.Key
}

func newKeyboard(t *input.Tracker) *keyboard {
	return &keyboard{tracker: t}
}

func (k *keyboard) poll() {
	k.keys = inpututil.AppendJustPressedKeys(k.keys[:0])
	for _, key := range k.keys {
		k.tracker.Apply(input.KeyEvent{Key: keyName(key), Press: true})
	}
	k.keys = inpututil.AppendJustReleasedKeys(k.keys[:0])
	for _, key := range k.keys {
		k.tracker.Apply(input.KeyEvent{Key: keyName(key), Press: false})
	}
}

func keyName(k ebiten.Key) string {
	return strings.ToLower(k.String())
}
