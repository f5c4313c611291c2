package emu

// Instruction is the decoded view of one opcode. Every field is derived
// from Opcode; nothing here is persisted between steps.
type Instruction struct {
	Opcode uint16
	Class  uint8  // bits 15-12
	X      uint8  // bits 11-8
	Y      uint8  // bits 7-4
	N      uint8  // bits 3-0
	NN     uint8  // bits 7-0
	NNN    uint16 // bits 11-0
}

// Decode splits an opcode into its fields. It accepts every 16-bit value.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Class:  uint8(opcode >> 12),
		X:      uint8(opcode>>8) & 0x0F,
		Y:      uint8(opcode>>4) & 0x0F,
		N:      uint8(opcode) & 0x0F,
		NN:     uint8(opcode),
		NNN:    opcode & 0x0FFF,
	}
}

// Fetch reads the big-endian opcode at pc. The second byte wraps to $000
// when pc is $FFF.
func Fetch(bus Bus, pc uint16) uint16 {
	hi := bus.Read(pc)
	lo := bus.Read((pc + 1) & addrMask)
	return uint16(hi)<<8 | uint16(lo)
}
