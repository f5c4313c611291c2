package emu

import "sort"

// Quirks selects behaviour that differs between historical interpreters.
// The zero value is the canonical behaviour.
type Quirks struct {
	VFReset              bool `json:"vf_reset"`                // OR, AND and XOR clear VF
	ShiftUsesVy          bool `json:"shift_uses_vy"`           // SHR and SHL shift Vy into Vx
	JumpUsesVx           bool `json:"jump_uses_vx"`            // Bxnn adds Vx instead of V0
	LoadStoreIncrementsI bool `json:"load_store_increments_i"` // Fx55 and Fx65 leave I at I+x+1
	ClipSprites          bool `json:"clip_sprites"`            // sprites are clipped at the edges instead of wrapping
}

// Profile names accepted by QuirksForProfile.
const (
	ProfileCanonical = "canonical"
	ProfileCOSMAC    = "cosmac"
	ProfileCHIP48    = "chip48"
	ProfileSCHIP     = "schip"
)

var quirkProfiles = map[string]Quirks{
	ProfileCanonical: {},
	ProfileCOSMAC: {
		VFReset:              true,
		ShiftUsesVy:          true,
		LoadStoreIncrementsI: true,
		ClipSprites:          true,
	},
	ProfileCHIP48: {
		JumpUsesVx:           true,
		LoadStoreIncrementsI: true,
		ClipSprites:          true,
	},
	ProfileSCHIP: {
		JumpUsesVx:  true,
		ClipSprites: true,
	},
}

// QuirksForProfile returns the quirk set for a named interpreter profile.
func QuirksForProfile(name string) (Quirks, bool) {
	q, ok := quirkProfiles[name]
	return q, ok
}

// ProfileNames returns the known profile names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(quirkProfiles))
	for name := range quirkProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
