package emu

// Bus is the CPU's view of the address space.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// ChipBus adapts Memory into the Bus interface.
type ChipBus struct {
	mem *Memory
}

// NewChipBus creates a new ChipBus over mem.
func NewChipBus(mem *Memory) *ChipBus {
	return &ChipBus{mem: mem}
}

func (b *ChipBus) Read(addr uint16) uint8       { return b.mem.Get(addr) }
func (b *ChipBus) Write(addr uint16, val uint8) { b.mem.Set(addr, val) }
