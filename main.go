//go:build !libretro

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"

	"github.com/user-none/ecosmac/cli"
	"github.com/user-none/ecosmac/config"
	"github.com/user-none/ecosmac/emu"
	"github.com/user-none/ecosmac/romloader"
	"github.com/user-none/ecosmac/trace"
	"github.com/user-none/ecosmac/wavwriter"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM file")
	configPath := flag.String("config", "", "path to config.json (default: OS config folder)")
	cpuHz := flag.Int("cpu-hz", 0, "instructions per second (default from config)")
	profile := flag.String("profile", "", "quirk profile: "+strings.Join(emu.ProfileNames(), ", "))
	scale := flag.Int("scale", 0, "window scale factor (default from config)")
	wavPath := flag.String("wav", "", "record audio to a .wav file")
	traceFlag := flag.Bool("trace", false, "log every executed instruction (implies -debug)")
	debug := flag.Bool("debug", false, "enable debug logging")
	quiet := flag.Bool("quiet", false, "only log errors")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("Usage: go run main.go -rom <romfile> [-cpu-hz N] [-profile name] [-scale N] [-wav out.wav] [-trace]")
		os.Exit(1)
	}

	logger := config.CreateLogger(*debug || *traceFlag, *quiet)
	fs := afero.NewOsFs()

	// An explicit -config file is only read; the default one is created on
	// first run
	cfgFile := *configPath
	if cfgFile == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Fatal("Locating config failed", log.Err(err))
		}
		cfgFile = p
		if err := config.CreateIfMissing(fs, cfgFile); err != nil {
			logger.Warn("Creating default config failed", log.Err(err), log.String("path", cfgFile))
		}
	}
	cfg, err := config.Load(fs, cfgFile)
	if err != nil {
		logger.Fatal("Loading config failed", log.Err(err), log.String("path", cfgFile))
	}

	// Flags override the config file
	if *cpuHz != 0 {
		cfg.CPUHz = *cpuHz
	}
	if *profile != "" {
		cfg.Profile = *profile
		cfg.Quirks = nil
	}
	if *scale != 0 {
		cfg.Scale = *scale
	}
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}

	opts, err := cfg.Options()
	if err != nil {
		logger.Fatal("Invalid configuration", log.Err(err))
	}

	romData, name, err := romloader.LoadROM(*romPath)
	if err != nil {
		logger.Fatal("Failed to load ROM", log.Err(err))
	}

	e, err := emu.NewEmulatorWithOptions(romData, emu.DefaultRegion(), opts)
	if err != nil {
		logger.Fatal("Failed to start emulator", log.Err(err))
	}
	e.SetLogger(logger)
	var tracer *trace.Tracer
	if *traceFlag {
		tracer = trace.New(logger)
		e.SetTracer(tracer)
	}

	var recorder *wavwriter.WavWriter
	if *wavPath != "" {
		if recorder, err = wavwriter.New(fs, *wavPath, emu.SampleRate); err != nil {
			logger.Fatal("Failed to start recording", log.Err(err))
		}
	}

	runner, err := cli.NewRunner(&e, recorder, logger)
	if err != nil {
		logger.Fatal("Failed to create runner", log.Err(err))
	}

	logger.Info("Running",
		log.String("rom", name),
		log.Int("size", e.Machine().Memory().GetROMSize()),
		log.Int("cpu_hz", e.CPUHz()),
		log.String("profile", cfg.Profile))

	timing := e.GetTiming()
	ebiten.SetWindowSize(emu.ScreenWidth*cfg.Scale, emu.MaxScreenHeight*cfg.Scale)
	ebiten.SetWindowTitle(emu.Name + " - " + name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(timing.FPS)

	runErr := ebiten.RunGame(runner)
	if tracer != nil {
		logger.Info("Trace finished", log.Int("instructions", int(tracer.Count())))
	}
	if err := runner.Close(); err != nil {
		logger.Error("Closing runner failed", log.Err(err))
	}
	if runErr != nil && runErr != ebiten.Termination {
		logger.Fatal("Emulation failed", log.Err(runErr))
	}
}
