package emu

import "testing"

// fixedRandom returns the same byte on every draw.
type fixedRandom uint8

func (r fixedRandom) Byte() uint8 { return uint8(r) }

// createTestROM assembles opcodes into a big-endian program image.
func createTestROM(ops ...uint16) []byte {
	rom := make([]byte, 0, len(ops)*2)
	for _, op := range ops {
		rom = append(rom, uint8(op>>8), uint8(op))
	}
	return rom
}

// createTestROMOfSize creates a program image of n bytes where each byte
// holds the low 8 bits of its offset.
func createTestROMOfSize(n int) []byte {
	rom := make([]byte, n)
	for i := range rom {
		rom[i] = byte(i)
	}
	return rom
}

// newTestMachine returns a canonical machine with ops loaded at ProgramStart
// and a fixed random source.
func newTestMachine(t *testing.T, ops ...uint16) *Machine {
	t.Helper()
	m := NewMachine(Quirks{}, fixedRandom(0xFF))
	if err := m.LoadROM(createTestROM(ops...)); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	return m
}

// execOp writes op at the current PC and executes it.
func execOp(m *Machine, op uint16) error {
	pc := m.cpu.PC
	m.mem.Set(pc, uint8(op>>8))
	m.mem.Set(pc+1, uint8(op))
	return m.Step()
}

// mustExec is execOp for instructions that must not fault.
func mustExec(t *testing.T, m *Machine, op uint16) {
	t.Helper()
	if err := execOp(m, op); err != nil {
		t.Fatalf("opcode 0x%04X: unexpected error: %v", op, err)
	}
}

// newTestEmulator creates an emulator running ops with canonical quirks.
func newTestEmulator(t *testing.T, ops ...uint16) *Emulator {
	t.Helper()
	opts := DefaultOptions()
	opts.Random = fixedRandom(0xFF)
	e, err := NewEmulatorWithOptions(createTestROM(ops...), RegionNTSC, opts)
	if err != nil {
		t.Fatalf("NewEmulatorWithOptions failed: %v", err)
	}
	return &e
}
