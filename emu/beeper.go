package emu

import "github.com/user-none/go-chip-sn76489"

const (
	beeperClockHz  = 3579545
	beeperClocks   = beeperClockHz / TimerHz // PSG clocks rendered per frame
	beeperTone     = 0x0FE                   // ~440 Hz divider
	beeperVolume   = 0x02                    // attenuation while sounding
	samplesPerTick = SampleRate / TimerHz
)

// Beeper drives the buzzer. Tone channel 0 of an SN76489 is set to a fixed
// pitch at start-up; the sound timer only toggles its attenuation.
type Beeper struct {
	psg    *sn76489.SN76489
	active bool
}

// NewBeeper creates a silent buzzer rendering at the core sample rate.
func NewBeeper() *Beeper {
	b := &Beeper{
		psg: sn76489.New(beeperClockHz, SampleRate, samplesPerTick*2, sn76489.Sega),
	}
	b.program()
	return b
}

// program latches the tone divider on channel 0 and mutes all channels.
func (b *Beeper) program() {
	b.psg.Write(0x80 | uint8(beeperTone&0x0F))
	b.psg.Write(uint8(beeperTone>>4) & 0x3F)
	for ch := uint8(0); ch < 4; ch++ {
		b.psg.Write(0x90 | ch<<5 | 0x0F)
	}
	b.active = false
}

// SetActive turns the tone on or off. Repeated calls with the same state do
// not touch the chip.
func (b *Beeper) SetActive(on bool) {
	if on == b.active {
		return
	}
	b.active = on
	if on {
		b.psg.Write(0x90 | beeperVolume)
	} else {
		b.psg.Write(0x9F)
	}
}

// Render produces one frame of mono samples. The returned slice is owned by
// the chip and is overwritten by the next call.
func (b *Beeper) Render() []float32 {
	b.psg.GenerateSamples(beeperClocks)
	buffer, count := b.psg.GetBuffer()
	return buffer[:count]
}

// Reset mutes the buzzer and restores the tone setup.
func (b *Beeper) Reset() {
	b.program()
}
