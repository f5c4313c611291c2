package emu

// StackSize is the number of return addresses the call stack holds.
const StackSize = 16

// CPU holds the register file and executes one instruction per Step.
// It reads memory through the bus and owns no other component; the
// framebuffer, keypad and timers are shared with the Machine.
type CPU struct {
	V     [16]uint8
	I     uint16
	PC    uint16
	stack [StackSize]uint16
	SP    uint8

	bus     Bus
	display *Display
	keypad  *Keypad
	timers  *Timers
	rng     Random
	quirks  Quirks
}

// NewCPU creates a CPU wired to its collaborators, with PC at ProgramStart.
func NewCPU(bus Bus, display *Display, keypad *Keypad, timers *Timers, rng Random) *CPU {
	c := &CPU{
		bus:     bus,
		display: display,
		keypad:  keypad,
		timers:  timers,
		rng:     rng,
	}
	c.Reset()
	return c
}

// Reset clears the registers and the stack and points PC at ProgramStart.
// Quirks and collaborators are kept.
func (c *CPU) Reset() {
	c.V = [16]uint8{}
	c.I = 0
	c.PC = ProgramStart
	c.stack = [StackSize]uint16{}
	c.SP = 0
}

// SetQuirks selects the behaviour variants used by subsequent steps.
func (c *CPU) SetQuirks(q Quirks) {
	c.quirks = q
}

// Quirks returns the active behaviour variants.
func (c *CPU) Quirks() Quirks {
	return c.quirks
}

// Stack returns a copy of the active return addresses, oldest first.
func (c *CPU) Stack() []uint16 {
	out := make([]uint16, c.SP)
	copy(out, c.stack[:c.SP])
	return out
}

// Step fetches, decodes and executes exactly one instruction. Faults are
// returned as *StepError after the instruction has completed as a no-op;
// the CPU is always left ready for the next Step.
func (c *CPU) Step() error {
	pc := c.PC
	opcode := Fetch(c.bus, pc)
	next, err := c.execute(Decode(opcode))
	c.PC = next & addrMask
	if err != nil {
		return &StepError{PC: pc, Opcode: opcode, Err: err}
	}
	return nil
}
