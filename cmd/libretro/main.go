package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/ecosmac/adapter"
)

func init() {
	libretro.RegisterFactory(&adapter.Factory{}, []libretro.RetropadMapping{
		{RetroID: libretro.JoypadA, BitID: adapter.KeyButtonID(0x5)},     // Key 5 (centre of the pad)
		{RetroID: libretro.JoypadB, BitID: adapter.KeyButtonID(0x0)},     // Key 0
		{RetroID: libretro.JoypadStart, BitID: adapter.KeyButtonID(0xF)}, // Key F
	})
}

func main() {}
