package emu

// Machine is the complete CHIP-8 interpreter state: memory, CPU, display,
// keypad and timers. It is not safe for concurrent use; the owner calls
// Step at the CPU rate and TickTimers at 60 Hz.
type Machine struct {
	mem     *Memory
	bus     *ChipBus
	cpu     *CPU
	display *Display
	keypad  *Keypad
	timers  *Timers
	rng     Random

	rom []byte
}

// NewMachine creates a machine with memory zeroed, the font installed and
// PC at ProgramStart. A nil rng is replaced by a clock-seeded source.
func NewMachine(quirks Quirks, rng Random) *Machine {
	if rng == nil {
		rng = NewTimeRandom()
	}

	mem := NewMemory()
	bus := NewChipBus(mem)
	display := NewDisplay()
	keypad := NewKeypad()
	timers := &Timers{}
	cpu := NewCPU(bus, display, keypad, timers, rng)
	cpu.SetQuirks(quirks)

	return &Machine{
		mem:     mem,
		bus:     bus,
		cpu:     cpu,
		display: display,
		keypad:  keypad,
		timers:  timers,
		rng:     rng,
	}
}

// LoadROM writes a program image at ProgramStart. An oversized image returns
// ErrROMTooLarge and leaves the machine untouched.
func (m *Machine) LoadROM(rom []byte) error {
	if err := m.mem.LoadROM(rom); err != nil {
		return err
	}
	m.rom = append(m.rom[:0], rom...)
	return nil
}

// Step executes one instruction.
func (m *Machine) Step() error {
	return m.cpu.Step()
}

// TickTimers advances the delay and sound timers by one 60 Hz tick.
func (m *Machine) TickTimers() {
	m.timers.Tick()
}

// SoundActive reports whether the buzzer should be audible.
func (m *Machine) SoundActive() bool {
	return m.timers.SoundActive()
}

// Reset returns the machine to its power-on state and reloads the current
// program image. Quirks and the random source are kept.
func (m *Machine) Reset() {
	m.mem.Reset()
	if len(m.rom) > 0 {
		_ = m.mem.LoadROM(m.rom)
	}
	m.cpu.Reset()
	m.display.Clear()
	m.keypad.Reset()
	m.timers.Reset()
}

// SetKey updates one keypad key.
func (m *Machine) SetKey(key uint8, pressed bool) {
	m.keypad.SetKey(key, pressed)
}

func (m *Machine) CPU() *CPU         { return m.cpu }
func (m *Machine) Memory() *Memory   { return m.mem }
func (m *Machine) Display() *Display { return m.display }
func (m *Machine) Keypad() *Keypad   { return m.keypad }
func (m *Machine) Timers() *Timers   { return m.timers }
