// Package trace logs every executed CHIP-8 instruction with its mnemonic.
package trace

import (
	"fmt"
	"math/bits"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/user-none/ecosmac/emu"
)

var _ emu.Tracer = (*Tracer)(nil)

// Tracer writes one debug log line per instruction.
type Tracer struct {
	logger *log.Logger
	count  uint64
}

// New returns a tracer writing to logger.
func New(logger *log.Logger) *Tracer {
	return &Tracer{logger: logger}
}

// Trace is called before the instruction at pc executes.
func (t *Tracer) Trace(pc, opcode uint16) {
	t.count++
	if t.logger == nil {
		return
	}
	t.logger.Debug(Format(pc, opcode))
}

// Count returns the number of traced instructions.
func (t *Tracer) Count() uint64 {
	return t.count
}

// Mnemonic returns the instruction name for opcode, or an empty string
// when the opcode is unassigned.
func Mnemonic(opcode uint16) string {
	op, ok := lookup(opcode)
	if !ok {
		return ""
	}
	return op.Instruction.Name
}

// Format renders pc and opcode as a listing line.
func Format(pc, opcode uint16) string {
	name := Mnemonic(opcode)
	if name == "" {
		name = "???"
	}
	return fmt.Sprintf("$%03X  %04X  %s", pc&0xFFF, opcode, name)
}

// lookup picks the matching entry with the most specific mask.
func lookup(opcode uint16) (chip8.Opcode, bool) {
	var best chip8.Opcode
	bestBits := -1
	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Instruction == nil || op.Info.Mask&opcode != op.Info.Value {
			continue
		}
		if n := bits.OnesCount16(uint16(op.Info.Mask)); n > bestBits {
			best, bestBits = op, n
		}
	}
	return best, bestBits >= 0
}
