package emu

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/user-none/go-chip-sn76489"
)

func TestSaveState_Size(t *testing.T) {
	// RAM + V + I + PC + stack + SP + DT + ST + display + keys
	body := MemorySize + 16 + 2 + 2 + StackSize*2 + 1 + 1 + 1 + DisplaySize + 2
	want := stateHeaderSize + body + sn76489.SerializeSize

	if got := SerializeSize(); got != want {
		t.Errorf("expected %d, got %d", want, got)
	}

	e := newTestEmulator(t, 0x1200)
	data, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if len(data) != want {
		t.Errorf("serialized length: expected %d, got %d", want, len(data))
	}
}

func TestSaveState_Header(t *testing.T) {
	rom := createTestROM(0x1200)
	e := newTestEmulator(t, 0x1200)

	data, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if string(data[0:12]) != stateMagic {
		t.Errorf("magic: expected %q, got %q", stateMagic, data[0:12])
	}
	if v := binary.LittleEndian.Uint16(data[12:14]); v != stateVersion {
		t.Errorf("version: expected %d, got %d", stateVersion, v)
	}
	if crc := binary.LittleEndian.Uint32(data[14:18]); crc != crc32.ChecksumIEEE(rom) {
		t.Errorf("ROM CRC: expected 0x%08X, got 0x%08X", crc32.ChecksumIEEE(rom), crc)
	}
	if crc := binary.LittleEndian.Uint32(data[18:22]); crc != crc32.ChecksumIEEE(data[stateHeaderSize:]) {
		t.Errorf("data CRC mismatch")
	}
}

func TestSaveState_RoundTrip(t *testing.T) {
	// LD V0, 60; LD ST, V0; LD I, font; DRW V1, V1, 5; CALL 0x20A; 0x20A: ADD V2, 1; JP 0x20A
	e := newTestEmulator(t, 0x603C, 0xF018, 0xA050, 0xD115, 0x220A, 0x7201, 0x120A)
	e.SetInput(0, 1<<(4+0x3))
	e.RunFrame()

	data, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	m := e.Machine()
	wantCPU := *m.CPU()
	wantRAM := *m.Memory().GetRAM()
	wantPixels := m.Display().Pixels()
	wantTimers := *m.Timers()

	for i := 0; i < 5; i++ {
		e.RunFrame()
	}
	e.SetInput(0, 0)
	m.Memory().Set(0x400, 0xEE)

	if err := e.Deserialize(data); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	cpu := m.CPU()
	if cpu.V != wantCPU.V || cpu.I != wantCPU.I || cpu.PC != wantCPU.PC || cpu.SP != wantCPU.SP {
		t.Errorf("CPU mismatch: got V=%v I=0x%03X PC=0x%03X SP=%d", cpu.V, cpu.I, cpu.PC, cpu.SP)
	}
	if cpu.stack != wantCPU.stack {
		t.Errorf("stack mismatch: expected %v, got %v", wantCPU.stack, cpu.stack)
	}
	if *m.Memory().GetRAM() != wantRAM {
		t.Error("memory mismatch")
	}
	if m.Display().Pixels() != wantPixels {
		t.Error("display mismatch")
	}
	if *m.Timers() != wantTimers {
		t.Errorf("timers: expected %+v, got %+v", wantTimers, *m.Timers())
	}
	if !m.Keypad().Pressed(0x3) {
		t.Error("keypad state not restored")
	}
	if e.beeper.active != m.SoundActive() {
		t.Error("beeper state does not follow the sound timer")
	}
}

func TestSaveState_VerifyErrors(t *testing.T) {
	e := newTestEmulator(t, 0x1200)
	good, err := e.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	corrupt := func(f func(d []byte)) []byte {
		d := make([]byte, len(good))
		copy(d, good)
		f(d)
		return d
	}

	testCases := []struct {
		name string
		data []byte
		want string
	}{
		{"too short", good[:len(good)-1], "save state too short"},
		{"bad magic", corrupt(func(d []byte) { d[0] = 'X' }), "invalid save state magic"},
		{"version zero", corrupt(func(d []byte) { binary.LittleEndian.PutUint16(d[12:14], 0) }), "unsupported save state version 0"},
		{"future version", corrupt(func(d []byte) { binary.LittleEndian.PutUint16(d[12:14], stateVersion+1) }), "unsupported save state version 2"},
		{"other ROM", corrupt(func(d []byte) { d[14] ^= 0xFF }), "save state is for a different ROM"},
		{"corrupt body", corrupt(func(d []byte) { d[stateHeaderSize+0x300] ^= 0x01 }), "save state data is corrupted"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := e.VerifyState(tc.data)
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Error() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, err.Error())
			}
			if e.Deserialize(tc.data) == nil {
				t.Error("Deserialize accepted an invalid state")
			}
		})
	}

	if err := e.VerifyState(good); err != nil {
		t.Errorf("valid state rejected: %v", err)
	}
}

func TestSaveState_DifferentROMRejected(t *testing.T) {
	a := newTestEmulator(t, 0x1200)
	b := newTestEmulator(t, 0x1202)

	data, err := a.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if err := b.Deserialize(data); err == nil {
		t.Error("state from another ROM was accepted")
	}
}
