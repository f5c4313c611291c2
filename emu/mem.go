package emu

import (
	"fmt"
	"hash/crc32"
)

const (
	MemorySize   = 0x1000                    // 4KB address space
	ProgramStart = 0x200                     // First byte of the program image
	MaxROMSize   = MemorySize - ProgramStart // 3584 bytes
	addrMask     = MemorySize - 1            // Addresses wrap at 4KB
)

// Memory implements the CHIP-8 memory map
//
//	$000-$1FF: interpreter area (font glyphs at $050-$09F)
//	$200-$FFF: program image and working memory
//
// Every access is masked to 12 bits, so addresses past $FFF wrap to $000.
type Memory struct {
	ram     [MemorySize]uint8
	romCRC  uint32
	romSize int
}

// NewMemory returns zeroed memory with the font installed.
func NewMemory() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes memory and reinstalls the font glyphs. The program image is
// not reloaded.
func (m *Memory) Reset() {
	m.ram = [MemorySize]uint8{}
	copy(m.ram[FontBase:], fontSet[:])
}

// LoadROM copies a program image verbatim to ProgramStart and zeroes the
// rest of program space. An image larger than MaxROMSize is rejected before
// any byte is written.
func (m *Memory) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	clear(m.ram[ProgramStart:])
	copy(m.ram[ProgramStart:], rom)
	m.romCRC = crc32.ChecksumIEEE(rom)
	m.romSize = len(rom)
	return nil
}

// Get reads a byte, wrapping the address at 4KB
func (m *Memory) Get(addr uint16) uint8 {
	return m.ram[addr&addrMask]
}

// Set writes a byte, wrapping the address at 4KB
func (m *Memory) Set(addr uint16, val uint8) {
	m.ram[addr&addrMask] = val
}

// GetRAM returns a pointer to the full 4KB address space for external access.
// Used for memory inspection and save states.
func (m *Memory) GetRAM() *[MemorySize]uint8 {
	return &m.ram
}

// GetROMCRC32 returns the CRC32 checksum of the loaded program image.
// Used for save state verification to ensure states are loaded with the correct ROM.
func (m *Memory) GetROMCRC32() uint32 {
	return m.romCRC
}

// GetROMSize returns the length of the loaded program image.
func (m *Memory) GetROMSize() int {
	return m.romSize
}
