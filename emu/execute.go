package emu

// execute runs one decoded instruction and returns the address of the next
// one. Faulting instructions still return a valid next address.
func (c *CPU) execute(in Instruction) (uint16, error) {
	next := c.PC + 2

	switch in.Class {
	case 0x0:
		return c.execSystem(in)
	case 0x1: // JP nnn
		return in.NNN, nil
	case 0x2: // CALL nnn
		if int(c.SP) >= StackSize {
			return next, ErrStackOverflow
		}
		c.stack[c.SP] = next & addrMask
		c.SP++
		return in.NNN, nil
	case 0x3: // SE Vx, nn
		return c.skipIf(c.V[in.X] == in.NN), nil
	case 0x4: // SNE Vx, nn
		return c.skipIf(c.V[in.X] != in.NN), nil
	case 0x5: // SE Vx, Vy
		if in.N != 0 {
			return next, ErrUnassignedOpcode
		}
		return c.skipIf(c.V[in.X] == c.V[in.Y]), nil
	case 0x6: // LD Vx, nn
		c.V[in.X] = in.NN
	case 0x7: // ADD Vx, nn (VF untouched)
		c.V[in.X] += in.NN
	case 0x8:
		if err := c.execALU(in); err != nil {
			return next, err
		}
	case 0x9: // SNE Vx, Vy
		if in.N != 0 {
			return next, ErrUnassignedOpcode
		}
		return c.skipIf(c.V[in.X] != c.V[in.Y]), nil
	case 0xA: // LD I, nnn
		c.I = in.NNN
	case 0xB: // JP V0, nnn
		reg := uint8(0)
		if c.quirks.JumpUsesVx {
			reg = in.X
		}
		return in.NNN + uint16(c.V[reg]), nil
	case 0xC: // RND Vx, nn
		c.V[in.X] = c.rng.Byte() & in.NN
	case 0xD: // DRW Vx, Vy, n
		c.draw(in)
	case 0xE:
		return c.execKey(in)
	case 0xF:
		return c.execMisc(in)
	}

	return next, nil
}

// skipIf returns the address after the next instruction when cond holds.
func (c *CPU) skipIf(cond bool) uint16 {
	if cond {
		return c.PC + 4
	}
	return c.PC + 2
}

// execSystem handles the 0nnn group. Only CLS and RET are defined; machine
// code calls (SYS nnn) are not supported.
func (c *CPU) execSystem(in Instruction) (uint16, error) {
	next := c.PC + 2

	switch in.Opcode {
	case 0x00E0: // CLS
		c.display.Clear()
		return next, nil
	case 0x00EE: // RET
		if c.SP == 0 {
			return next, ErrStackUnderflow
		}
		c.SP--
		return c.stack[c.SP], nil
	}
	return next, ErrUnassignedOpcode
}

// execALU handles the 8xyN register arithmetic group. Results are stored
// before VF so the flag wins when x is F.
func (c *CPU) execALU(in Instruction) error {
	vx, vy := c.V[in.X], c.V[in.Y]

	switch in.N {
	case 0x0: // LD Vx, Vy
		c.V[in.X] = vy
	case 0x1: // OR
		c.V[in.X] = vx | vy
		c.logicFlag()
	case 0x2: // AND
		c.V[in.X] = vx & vy
		c.logicFlag()
	case 0x3: // XOR
		c.V[in.X] = vx ^ vy
		c.logicFlag()
	case 0x4: // ADD
		sum := uint16(vx) + uint16(vy)
		c.V[in.X] = uint8(sum)
		c.V[0xF] = flag(sum > 0xFF)
	case 0x5: // SUB
		c.V[in.X] = vx - vy
		c.V[0xF] = flag(vx >= vy)
	case 0x6: // SHR
		src := c.shiftSource(vx, vy)
		c.V[in.X] = src >> 1
		c.V[0xF] = src & 0x01
	case 0x7: // SUBN
		c.V[in.X] = vy - vx
		c.V[0xF] = flag(vy >= vx)
	case 0xE: // SHL
		src := c.shiftSource(vx, vy)
		c.V[in.X] = src << 1
		c.V[0xF] = src >> 7
	default:
		return ErrUnassignedOpcode
	}
	return nil
}

func (c *CPU) logicFlag() {
	if c.quirks.VFReset {
		c.V[0xF] = 0
	}
}

func (c *CPU) shiftSource(vx, vy uint8) uint8 {
	if c.quirks.ShiftUsesVy {
		return vy
	}
	return vx
}

// draw XORs an N-row sprite read from memory at I onto the display. VF is
// cleared first and set when any lit pixel is turned off.
func (c *CPU) draw(in Instruction) {
	x, y := c.V[in.X], c.V[in.Y]
	c.V[0xF] = 0

	var rows [15]uint8
	sprite := rows[:in.N]
	for i := range sprite {
		sprite[i] = c.bus.Read(c.I + uint16(i))
	}

	if c.display.DrawSprite(x, y, sprite, c.quirks.ClipSprites) {
		c.V[0xF] = 1
	}
}

// execKey handles the Ex9E and ExA1 keypad skips.
func (c *CPU) execKey(in Instruction) (uint16, error) {
	switch in.NN {
	case 0x9E: // SKP Vx
		return c.skipIf(c.keypad.Pressed(c.V[in.X])), nil
	case 0xA1: // SKNP Vx
		return c.skipIf(!c.keypad.Pressed(c.V[in.X])), nil
	}
	return c.PC + 2, ErrUnassignedOpcode
}

// execMisc handles the FxNN group: timers, keypad wait, I arithmetic and
// register transfers.
func (c *CPU) execMisc(in Instruction) (uint16, error) {
	next := c.PC + 2

	switch in.NN {
	case 0x07: // LD Vx, DT
		c.V[in.X] = c.timers.Delay
	case 0x0A: // LD Vx, K
		key, ok := c.keypad.FirstPressed()
		if !ok {
			// Re-executed on every step until a key is down
			return c.PC, nil
		}
		c.V[in.X] = key
	case 0x15: // LD DT, Vx
		c.timers.Delay = c.V[in.X]
	case 0x18: // LD ST, Vx
		c.timers.Sound = c.V[in.X]
	case 0x1E: // ADD I, Vx (16-bit wrap, VF untouched)
		c.I += uint16(c.V[in.X])
	case 0x29: // LD F, Vx
		c.I = FontBase + uint16(c.V[in.X])*GlyphSize
	case 0x33: // LD B, Vx
		v := c.V[in.X]
		c.bus.Write(c.I, v/100)
		c.bus.Write(c.I+1, (v/10)%10)
		c.bus.Write(c.I+2, v%10)
	case 0x55: // LD [I], Vx
		for i := uint16(0); i <= uint16(in.X); i++ {
			c.bus.Write(c.I+i, c.V[i])
		}
		c.advanceIndex(in.X)
	case 0x65: // LD Vx, [I]
		for i := uint16(0); i <= uint16(in.X); i++ {
			c.V[i] = c.bus.Read(c.I + i)
		}
		c.advanceIndex(in.X)
	default:
		return next, ErrUnassignedOpcode
	}
	return next, nil
}

func (c *CPU) advanceIndex(x uint8) {
	if c.quirks.LoadStoreIncrementsI {
		c.I += uint16(x) + 1
	}
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
