package adapter

import (
	"errors"
	"slices"
	"testing"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/ecosmac/emu"
)

func TestFactory_SystemInfo(t *testing.T) {
	info := (&Factory{}).SystemInfo()

	if info.ScreenWidth != 64 || info.MaxScreenHeight != 32 {
		t.Errorf("screen: expected 64x32, got %dx%d", info.ScreenWidth, info.MaxScreenHeight)
	}
	if info.AspectRatio != 2.0 {
		t.Errorf("aspect ratio: expected 2.0, got %f", info.AspectRatio)
	}
	if len(info.Buttons) != emu.KeyCount {
		t.Fatalf("expected %d buttons, got %d", emu.KeyCount, len(info.Buttons))
	}
	for k, b := range info.Buttons {
		if b.ID != 4+k {
			t.Errorf("button %d: expected ID %d, got %d", k, 4+k, b.ID)
		}
		if b.DefaultKey != StandardLayout[k] {
			t.Errorf("button %d: expected key %q, got %q", k, StandardLayout[k], b.DefaultKey)
		}
	}
	if info.Buttons[0xA].Name != "a" {
		t.Errorf("button A name: expected %q, got %q", "a", info.Buttons[0xA].Name)
	}
	if info.SerializeSize != emu.SerializeSize() {
		t.Errorf("serialize size: expected %d, got %d", emu.SerializeSize(), info.SerializeSize)
	}
	for _, ext := range []string{".ch8", ".c8", ".rom"} {
		if !slices.Contains(info.Extensions, ext) {
			t.Errorf("extensions %v missing %q", info.Extensions, ext)
		}
	}
	for _, opt := range info.CoreOptions {
		if opt.Type != emucore.CoreOptionBool || opt.Default != "false" {
			t.Errorf("option %s: expected bool defaulting to false", opt.Key)
		}
	}
}

func TestFactory_CreateEmulator(t *testing.T) {
	f := &Factory{}

	e, err := f.CreateEmulator([]byte{0x12, 0x00}, emucore.RegionNTSC)
	if err != nil {
		t.Fatalf("CreateEmulator failed: %v", err)
	}
	defer e.Close()

	e.RunFrame()
	if len(e.GetFramebuffer()) != 64*32*4 {
		t.Errorf("framebuffer length: got %d", len(e.GetFramebuffer()))
	}
	if _, ok := e.(emucore.SaveStater); !ok {
		t.Error("emulator should support save states")
	}

	_, err = f.CreateEmulator(make([]byte, emu.MaxROMSize+1), emucore.RegionNTSC)
	if !errors.Is(err, emu.ErrROMTooLarge) {
		t.Errorf("expected ErrROMTooLarge, got %v", err)
	}
}

func TestStandardLayout_Unique(t *testing.T) {
	seen := map[string]int{}
	for k, key := range StandardLayout {
		if prev, ok := seen[key]; ok {
			t.Errorf("key %q used by 0x%X and 0x%X", key, prev, k)
		}
		seen[key] = k
	}
}
