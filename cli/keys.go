//go:build !libretro

package cli

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/ecosmac/adapter"
	"github.com/user-none/ecosmac/emu"
)

// ebitenKeys names the keyboard keys a layout may use.
var ebitenKeys = map[string]ebiten.Key{
	"0": ebiten.Key0, "1": ebiten.Key1, "2": ebiten.Key2, "3": ebiten.Key3,
	"4": ebiten.Key4, "5": ebiten.Key5, "6": ebiten.Key6, "7": ebiten.Key7,
	"8": ebiten.Key8, "9": ebiten.Key9,
	"A": ebiten.KeyA, "B": ebiten.KeyB, "C": ebiten.KeyC, "D": ebiten.KeyD,
	"E": ebiten.KeyE, "F": ebiten.KeyF, "G": ebiten.KeyG, "H": ebiten.KeyH,
	"I": ebiten.KeyI, "J": ebiten.KeyJ, "K": ebiten.KeyK, "L": ebiten.KeyL,
	"M": ebiten.KeyM, "N": ebiten.KeyN, "O": ebiten.KeyO, "P": ebiten.KeyP,
	"Q": ebiten.KeyQ, "R": ebiten.KeyR, "S": ebiten.KeyS, "T": ebiten.KeyT,
	"U": ebiten.KeyU, "V": ebiten.KeyV, "W": ebiten.KeyW, "X": ebiten.KeyX,
	"Y": ebiten.KeyY, "Z": ebiten.KeyZ,
}

// gamepadMap binds standard gamepad buttons to input bits. The d-pad uses
// the core's 2/8/4/6 mapping; face buttons press 5, 0 and F.
var gamepadMap = []struct {
	button ebiten.StandardGamepadButton
	bit    int
}{
	{ebiten.StandardGamepadButtonLeftTop, emucore.ButtonUp},
	{ebiten.StandardGamepadButtonLeftBottom, emucore.ButtonDown},
	{ebiten.StandardGamepadButtonLeftLeft, emucore.ButtonLeft},
	{ebiten.StandardGamepadButtonLeftRight, emucore.ButtonRight},
	{ebiten.StandardGamepadButtonRightBottom, adapter.KeyButtonID(0x5)},
	{ebiten.StandardGamepadButtonRightRight, adapter.KeyButtonID(0x0)},
	{ebiten.StandardGamepadButtonCenterRight, adapter.KeyButtonID(0xF)},
}

// keyTable resolves a layout of key names to Ebiten keys.
func keyTable(layout [emu.KeyCount]string) ([emu.KeyCount]ebiten.Key, error) {
	var keys [emu.KeyCount]ebiten.Key
	seen := make(map[string]int, emu.KeyCount)
	for k, name := range layout {
		key, ok := ebitenKeys[name]
		if !ok {
			return keys, fmt.Errorf("no keyboard key named %q for hex key %X", name, k)
		}
		if prev, dup := seen[name]; dup {
			return keys, fmt.Errorf("key %q bound to both %X and %X", name, prev, k)
		}
		seen[name] = k
		keys[k] = key
	}
	return keys, nil
}
