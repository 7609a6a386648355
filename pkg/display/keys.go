package display

import (
	"time"

	"github.com/taigrr/cornell/pkg/control"
)

// keyNames are the keys the frame loop reacts to.
var keyNames = []string{"up", "down", "left", "right", "w", "s", "a", "d", "q", "e", "r"}

// keyLatch remembers key presses for a while, for input sources that send
// repeats but no releases.
type keyLatch struct {
	hold    time.Duration
	pressed map[string]time.Time
}

func newKeyLatch(hold time.Duration) *keyLatch {
	return &keyLatch{hold: hold, pressed: make(map[string]time.Time)}
}

func (l *keyLatch) press(name string, at time.Time) {
	l.pressed[name] = at
}

func (l *keyLatch) release(name string) {
	delete(l.pressed, name)
}

func (l *keyLatch) held(name string, now time.Time) bool {
	at, ok := l.pressed[name]
	if !ok {
		return false
	}
	if now.Sub(at) >= l.hold {
		delete(l.pressed, name)
		return false
	}
	return true
}

// keys samples the latch. Reset fires once per press.
func (l *keyLatch) keys(now time.Time) control.Keys {
	k := control.Keys{
		Forward:       l.held("up", now),
		Backward:      l.held("down", now),
		TurnLeft:      l.held("left", now),
		TurnRight:     l.held("right", now),
		LightForward:  l.held("w", now),
		LightBackward: l.held("s", now),
		LightLeft:     l.held("a", now),
		LightRight:    l.held("d", now),
		LightUp:       l.held("q", now),
		LightDown:     l.held("e", now),
		Reset:         l.held("r", now),
	}
	l.release("r")
	return k
}
