//go:build !libretro && !ios

package main

import (
	"flag"
	"log"
	"strconv"

	"github.com/user-none/eblitui/standalone"
	"github.com/user-none/ecosmac/adapter"
	"github.com/user-none/ecosmac/emu"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM file (opens UI if not provided)")
	cpuHz := flag.Int("cpu-hz", emu.DefaultCPUHz, "instructions per second")
	profile := flag.String("profile", emu.ProfileCanonical, "quirk profile: canonical, cosmac, chip48 or schip")
	flag.Parse()

	if _, ok := emu.QuirksForProfile(*profile); !ok {
		log.Fatalf("Invalid profile: %s", *profile)
	}

	factory := &adapter.Factory{}

	if *romPath != "" {
		options := map[string]string{
			emu.OptionCPUHz:   strconv.Itoa(*cpuHz),
			emu.OptionProfile: *profile,
		}
		if err := standalone.RunDirect(factory, *romPath, "auto", options); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal(err)
	}
}
