package emu

import (
	"errors"
	"fmt"
)

// ErrROMTooLarge is returned when a program image does not fit between
// ProgramStart and the end of memory.
var ErrROMTooLarge = errors.New("ROM exceeds program memory")

// ErrStackOverflow is reported when CALL executes with all stack slots in use.
// The call is not taken.
var ErrStackOverflow = errors.New("stack overflow")

// ErrStackUnderflow is reported when RET executes with an empty stack.
// The return is not taken.
var ErrStackUnderflow = errors.New("stack underflow")

// ErrUnassignedOpcode is reported for bit patterns the instruction set does
// not define. They execute as no-ops.
var ErrUnassignedOpcode = errors.New("unassigned opcode")

// StepError describes a fault raised by a single instruction. The machine
// state stays consistent: the faulting instruction behaves as a no-op and
// the program counter moves past it.
type StepError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v at $%03X (opcode $%04X)", e.Err, e.PC, e.Opcode)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
