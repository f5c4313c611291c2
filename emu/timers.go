package emu

// TimerHz is the rate at which the delay and sound timers count down.
const TimerHz = 60

// Timers holds the delay and sound counters. They are written by the CPU and
// decremented by the host at TimerHz, independently of the step rate.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements each nonzero counter by one.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive reports whether the buzzer should be audible.
func (t *Timers) SoundActive() bool {
	return t.Sound > 0
}

// Reset zeroes both counters.
func (t *Timers) Reset() {
	t.Delay = 0
	t.Sound = 0
}
