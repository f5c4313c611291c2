package emu

import (
	emucore "github.com/user-none/eblitui/api"
)

// Region is an alias for emucore.Region. CHIP-8 timing does not depend on
// it; the value is only stored and reported back.
type Region = emucore.Region

const (
	RegionNTSC = emucore.RegionNTSC
	RegionPAL  = emucore.RegionPAL
)

const (
	DefaultCPUHz = 500  // Instructions per second
	MinCPUHz     = 60   // One instruction per frame
	MaxCPUHz     = 6000 // Upper bound accepted from options
)

// CyclesPerFrame returns the number of instructions run per 60 Hz frame for
// the given CPU rate, rounded up by one.
func CyclesPerFrame(cpuHz int) int {
	return cpuHz/TimerHz + 1
}

// ClampCPUHz limits a requested CPU rate to [MinCPUHz, MaxCPUHz].
func ClampCPUHz(hz int) int {
	if hz < MinCPUHz {
		return MinCPUHz
	}
	if hz > MaxCPUHz {
		return MaxCPUHz
	}
	return hz
}

// DefaultRegion returns the default region (NTSC).
func DefaultRegion() Region {
	return RegionNTSC
}

// DetectRegionFromROM always returns (NTSC, false): CHIP-8 programs carry no
// region information.
func DetectRegionFromROM(rom []byte) (Region, bool) {
	return RegionNTSC, false
}
