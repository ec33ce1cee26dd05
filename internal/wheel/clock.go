package wheel

import "github.com/jonboulle/clockwork"

// clock stamps frames. Tests freeze it with SetClock for reproducible output.
var clock = clockwork.NewRealClock()

// SetClock swaps the frame time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
