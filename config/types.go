package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/user-none/ecosmac/emu"
)

const (
	defaultCPUHz    = emu.DefaultCPUHz
	defaultProfile  = emu.ProfileCanonical
	defaultScale    = 10
	defaultVolume   = 0.5
	defaultOnColor  = "#FFFFFF"
	defaultOffColor = "#000000"
)

// Config is the persistent user configuration.
type Config struct {
	Version int     `json:"version"`
	CPUHz   int     `json:"cpu_hz"`
	Profile string  `json:"profile"`
	Quirks  *Quirks `json:"quirks,omitempty"` // overrides of the profile
	Scale   int     `json:"scale"`
	Volume  float64 `json:"volume"`
	Palette Palette `json:"palette"`
}

// Quirks holds per-flag overrides. A nil field keeps the profile value.
type Quirks struct {
	VFReset              *bool `json:"vf_reset,omitempty"`
	ShiftUsesVy          *bool `json:"shift_uses_vy,omitempty"`
	JumpUsesVx           *bool `json:"jump_uses_vx,omitempty"`
	LoadStoreIncrementsI *bool `json:"load_store_increments_i,omitempty"`
	ClipSprites          *bool `json:"clip_sprites,omitempty"`
}

// Palette holds the pixel colours as #RRGGBB strings.
type Palette struct {
	On  string `json:"on"`
	Off string `json:"off"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: currentVersion,
		CPUHz:   defaultCPUHz,
		Profile: defaultProfile,
		Scale:   defaultScale,
		Volume:  defaultVolume,
		Palette: Palette{On: defaultOnColor, Off: defaultOffColor},
	}
}

// EffectiveQuirks resolves the profile and applies the overrides.
func (c *Config) EffectiveQuirks() (emu.Quirks, error) {
	q, ok := emu.QuirksForProfile(c.Profile)
	if !ok {
		return emu.Quirks{}, fmt.Errorf("unknown quirk profile %q (want one of %s)",
			c.Profile, strings.Join(emu.ProfileNames(), ", "))
	}
	if c.Quirks == nil {
		return q, nil
	}
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&q.VFReset, c.Quirks.VFReset)
	apply(&q.ShiftUsesVy, c.Quirks.ShiftUsesVy)
	apply(&q.JumpUsesVx, c.Quirks.JumpUsesVx)
	apply(&q.LoadStoreIncrementsI, c.Quirks.LoadStoreIncrementsI)
	apply(&q.ClipSprites, c.Quirks.ClipSprites)
	return q, nil
}

// Options converts the configuration into emulator options.
func (c *Config) Options() (emu.Options, error) {
	opts := emu.DefaultOptions()

	q, err := c.EffectiveQuirks()
	if err != nil {
		return opts, err
	}
	opts.Quirks = q

	if c.CPUHz != 0 {
		opts.CPUHz = emu.ClampCPUHz(c.CPUHz)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return opts, fmt.Errorf("volume %v out of range [0, 1]", c.Volume)
	}
	opts.Volume = c.Volume

	if c.Palette.On != "" {
		if opts.OnColor, err = ParseColor(c.Palette.On); err != nil {
			return opts, err
		}
	}
	if c.Palette.Off != "" {
		if opts.OffColor, err = ParseColor(c.Palette.Off); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// ParseColor parses a #RRGGBB or RRGGBB colour.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
