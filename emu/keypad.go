package emu

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Keypad latches the state of the 16 hex keys. The host writes it; the CPU
// only reads it.
type Keypad struct {
	keys [KeyCount]bool
}

// NewKeypad returns a keypad with every key released.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// SetKey sets the state of one key. Only the low nibble of key is used.
func (k *Keypad) SetKey(key uint8, pressed bool) {
	k.keys[key&0x0F] = pressed
}

// Pressed reports whether key is held. Only the low nibble of key is used.
func (k *Keypad) Pressed(key uint8) bool {
	return k.keys[key&0x0F]
}

// FirstPressed returns the lowest-numbered held key.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for i, down := range k.keys {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}

// SetMask replaces the whole keypad state from a bitmask where bit k is key k.
func (k *Keypad) SetMask(mask uint16) {
	for i := range k.keys {
		k.keys[i] = mask&(1<<i) != 0
	}
}

// Mask returns the keypad state as a bitmask where bit k is key k.
func (k *Keypad) Mask() uint16 {
	var mask uint16
	for i, down := range k.keys {
		if down {
			mask |= 1 << i
		}
	}
	return mask
}

// Reset releases every key.
func (k *Keypad) Reset() {
	k.keys = [KeyCount]bool{}
}
