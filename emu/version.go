package emu

// Core identification reported to frontends.
const (
	Name    = "eCOSMAC"
	Version = "0.1.0"
)
