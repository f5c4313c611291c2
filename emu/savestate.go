package emu

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
	"github.com/user-none/go-chip-sn76489"
)

// Save state format constants
const (
	stateVersion    = 1
	stateMagic      = "eCOSMACState"
	stateHeaderSize = 22 // magic(12) + version(2) + romCRC(4) + dataCRC(4)
)

// machineState is the packed body of a save state.
type machineState struct {
	RAM     [MemorySize]uint8
	V       [16]uint8
	I       uint16
	PC      uint16
	Stack   [StackSize]uint16
	SP      uint8
	Delay   uint8
	Sound   uint8
	Display [DisplaySize]uint8
	Keys    uint16
}

var machineStateSize = func() int {
	size, err := struc.Sizeof(&machineState{})
	if err != nil {
		panic(err)
	}
	return size
}()

// SerializeSize returns the total size in bytes needed for a save state.
func SerializeSize() int {
	return stateHeaderSize + machineStateSize + sn76489.SerializeSize
}

func (e *Emulator) captureState() *machineState {
	m := e.machine
	return &machineState{
		RAM:     *m.mem.GetRAM(),
		V:       m.cpu.V,
		I:       m.cpu.I,
		PC:      m.cpu.PC,
		Stack:   m.cpu.stack,
		SP:      m.cpu.SP,
		Delay:   m.timers.Delay,
		Sound:   m.timers.Sound,
		Display: m.display.cells,
		Keys:    m.keypad.Mask(),
	}
}

func (e *Emulator) applyState(st *machineState) {
	m := e.machine
	*m.mem.GetRAM() = st.RAM
	m.cpu.V = st.V
	m.cpu.I = st.I
	m.cpu.PC = st.PC & addrMask
	m.cpu.stack = st.Stack
	m.cpu.SP = st.SP
	if int(m.cpu.SP) > StackSize {
		m.cpu.SP = StackSize
	}
	m.timers.Delay = st.Delay
	m.timers.Sound = st.Sound
	for i, c := range st.Display {
		m.display.cells[i] = c & 1
	}
	m.keypad.SetMask(st.Keys)
}

// Serialize creates a save state and returns it as a byte slice.
func (e *Emulator) Serialize() ([]byte, error) {
	var body bytes.Buffer
	if err := struc.PackWithOrder(&body, e.captureState(), binary.LittleEndian); err != nil {
		return nil, errors.Wrap(err, "packing machine state")
	}

	data := make([]byte, SerializeSize())

	// Write header
	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	binary.LittleEndian.PutUint32(data[14:18], e.machine.mem.GetROMCRC32())

	offset := stateHeaderSize
	offset += copy(data[offset:], body.Bytes())
	e.beeper.psg.Serialize(data[offset:])

	// Data CRC32 covers everything after the header
	dataCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	binary.LittleEndian.PutUint32(data[18:22], dataCRC)

	return data, nil
}

// Deserialize restores emulator state from a save state byte slice.
// Region, CPU rate and quirks are not part of the state and are preserved.
func (e *Emulator) Deserialize(data []byte) error {
	if err := e.VerifyState(data); err != nil {
		return err
	}

	offset := stateHeaderSize
	var st machineState
	body := bytes.NewReader(data[offset : offset+machineStateSize])
	if err := struc.UnpackWithOrder(body, &st, binary.LittleEndian); err != nil {
		return errors.Wrap(err, "unpacking machine state")
	}
	offset += machineStateSize

	e.applyState(&st)
	e.beeper.psg.Deserialize(data[offset:])
	e.beeper.active = e.machine.SoundActive()
	e.render()

	return nil
}

// VerifyState checks if a save state is valid without loading it.
func (e *Emulator) VerifyState(data []byte) error {
	if len(data) < SerializeSize() {
		return errors.New("save state too short")
	}

	if string(data[0:12]) != stateMagic {
		return errors.New("invalid save state magic")
	}

	version := binary.LittleEndian.Uint16(data[12:14])
	if version == 0 || version > stateVersion {
		return errors.Errorf("unsupported save state version %d", version)
	}

	romCRC := binary.LittleEndian.Uint32(data[14:18])
	if romCRC != e.machine.mem.GetROMCRC32() {
		return errors.New("save state is for a different ROM")
	}

	expectedCRC := binary.LittleEndian.Uint32(data[18:22])
	actualCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	if expectedCRC != actualCRC {
		return errors.New("save state data is corrupted")
	}

	return nil
}
