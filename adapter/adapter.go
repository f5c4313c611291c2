package adapter

import (
	"strconv"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/ecosmac/emu"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// StandardLayout maps hex keys 0-F to the conventional QWERTY block
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var StandardLayout = [emu.KeyCount]string{
	0x0: "X", 0x1: "1", 0x2: "2", 0x3: "3",
	0x4: "Q", 0x5: "W", 0x6: "E", 0x7: "A",
	0x8: "S", 0x9: "D", 0xA: "Z", 0xB: "C",
	0xC: "4", 0xD: "R", 0xE: "F", 0xF: "V",
}

// KeyButtonID returns the input bit used for hex key k.
func KeyButtonID(k int) int {
	return 4 + k
}

// Factory implements emucore.CoreFactory for the CHIP-8 interpreter.
type Factory struct{}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            "ecosmac",
		ConsoleName:     "CHIP-8",
		Extensions:      []string{".ch8", ".c8", ".rom"},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.MaxScreenHeight,
		AspectRatio:     float64(emu.ScreenWidth) / float64(emu.MaxScreenHeight),
		SampleRate:      emu.SampleRate,
		Buttons:         buttons(),
		Players:         1,
		CoreOptions:     coreOptions(),
		DataDirName:     "ecosmac",
		CoreName:        emu.Name,
		CoreVersion:     emu.Version,
		SerializeSize:   emu.SerializeSize(),
	}
}

func buttons() []emucore.Button {
	out := make([]emucore.Button, 0, emu.KeyCount)
	for k, key := range StandardLayout {
		out = append(out, emucore.Button{
			Name:       strconv.FormatInt(int64(k), 16),
			ID:         KeyButtonID(k),
			DefaultKey: key,
		})
	}
	return out
}

func coreOptions() []emucore.CoreOption {
	return []emucore.CoreOption{
		quirkOption(emu.OptionVFReset, "VF Reset", "OR, AND and XOR clear VF"),
		quirkOption(emu.OptionShiftUsesVy, "Shift Uses VY", "SHR and SHL shift VY into VX"),
		quirkOption(emu.OptionJumpUsesVx, "Jump Uses VX", "BNNN adds VX instead of V0"),
		quirkOption(emu.OptionLoadStoreIncrementsI, "Load/Store Increments I", "FX55 and FX65 advance I"),
		quirkOption(emu.OptionClipSprites, "Clip Sprites", "Clip sprites at the screen edge instead of wrapping"),
	}
}

func quirkOption(key, label, description string) emucore.CoreOption {
	return emucore.CoreOption{
		Key:         key,
		Label:       label,
		Description: description,
		Type:        emucore.CoreOptionBool,
		Default:     "false",
	}
}

// CreateEmulator creates a new emulator instance with the given ROM and region.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	e, err := emu.NewEmulator(rom, region)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DetectRegion reports NTSC and false; CHIP-8 programs carry no region.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	return emu.DetectRegionFromROM(rom)
}
