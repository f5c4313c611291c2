package emu

import "testing"

func TestKeypad_SetAndRead(t *testing.T) {
	k := NewKeypad()

	if _, ok := k.FirstPressed(); ok {
		t.Fatal("new keypad reports a pressed key")
	}

	k.SetKey(0x7, true)
	k.SetKey(0x3, true)
	if !k.Pressed(0x7) || !k.Pressed(0x3) || k.Pressed(0x4) {
		t.Error("unexpected key states")
	}

	key, ok := k.FirstPressed()
	if !ok || key != 0x3 {
		t.Errorf("FirstPressed: expected (0x3, true), got (0x%X, %v)", key, ok)
	}

	k.SetKey(0x3, false)
	key, _ = k.FirstPressed()
	if key != 0x7 {
		t.Errorf("FirstPressed after release: expected 0x7, got 0x%X", key)
	}
}

func TestKeypad_IndexMasked(t *testing.T) {
	k := NewKeypad()
	k.SetKey(0xF5, true)

	if !k.Pressed(0x5) {
		t.Error("key 0x5 should be pressed")
	}
	if !k.Pressed(0x25) {
		t.Error("Pressed should use the low nibble")
	}
}

func TestKeypad_Mask(t *testing.T) {
	k := NewKeypad()
	k.SetMask(0x8421)

	for key := uint8(0); key < KeyCount; key++ {
		want := key == 0 || key == 5 || key == 10 || key == 15
		if k.Pressed(key) != want {
			t.Errorf("key 0x%X: expected %v", key, want)
		}
	}
	if k.Mask() != 0x8421 {
		t.Errorf("Mask: expected 0x8421, got 0x%04X", k.Mask())
	}

	k.Reset()
	if k.Mask() != 0 {
		t.Errorf("Mask after reset: expected 0, got 0x%04X", k.Mask())
	}
}
