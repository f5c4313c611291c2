//go:build sdl

// Command sdl runs the interpreter in an SDL2 window, drawing each lit
// pixel as a scale×scale rectangle.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/faiface/mainthread"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/user-none/ecosmac/adapter"
	"github.com/user-none/ecosmac/config"
	"github.com/user-none/ecosmac/emu"
	"github.com/user-none/ecosmac/romloader"
)

// maxQueuedAudio caps the device queue at ~100ms of stereo int16 audio.
const maxQueuedAudio = emu.SampleRate * 4 / 10

func main() {
	// Enable mainthread package and run in a separate goroutine.
	mainthread.Run(run)
}

func run() {
	romPath := flag.String("rom", "", "path to ROM file")
	cpuHz := flag.Int("cpu-hz", 0, "instructions per second (default from config)")
	profile := flag.String("profile", "", "quirk profile")
	scale := flag.Int("scale", 0, "pixel scale factor (default from config)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := config.CreateLogger(*debug, false)
	if *romPath == "" {
		fmt.Println("Usage: sdl -rom <romfile> [-cpu-hz N] [-profile name] [-scale N]")
		os.Exit(1)
	}

	cfg := config.Default()
	if path, err := config.DefaultPath(); err == nil {
		if loaded, err := config.LoadOrCreate(afero.NewOsFs(), path); err == nil {
			cfg = loaded
		} else {
			logger.Warn("Ignoring config", log.Err(err))
		}
	}
	if *cpuHz != 0 {
		cfg.CPUHz = *cpuHz
	}
	if *profile != "" {
		cfg.Profile = *profile
		cfg.Quirks = nil
	}
	if *scale > 0 {
		cfg.Scale = *scale
	}

	opts, err := cfg.Options()
	if err != nil {
		logger.Fatal("Invalid configuration", log.Err(err))
	}
	rom, name, err := romloader.LoadROM(*romPath)
	if err != nil {
		logger.Fatal("Failed to load ROM", log.Err(err))
	}
	e, err := emu.NewEmulatorWithOptions(rom, emu.DefaultRegion(), opts)
	if err != nil {
		logger.Fatal("Failed to start emulator", log.Err(err))
	}
	e.SetLogger(logger)

	var host *sdlHost
	mainthread.Call(func() {
		host, err = newSDLHost(emu.Name+" - "+name, cfg.Scale, opts)
	})
	if err != nil {
		logger.Fatal("Failed to initialise SDL", log.Err(err))
	}
	defer mainthread.Call(host.Close)

	ticker := time.NewTicker(time.Second / emu.TimerHz)
	defer ticker.Stop()

	for range ticker.C {
		var quit bool
		mainthread.Call(func() {
			quit = host.PollEvents(e.Machine())
		})
		if quit {
			return
		}

		e.RunFrame()

		mainthread.Call(func() {
			host.Draw(e.Machine().Display())
			if err := host.QueueAudio(e.GetAudioSamples()); err != nil {
				logger.Warn("Queueing audio failed", log.Err(err))
			}
		})
	}
}

// sdlHost owns the SDL window, renderer and audio device.
type sdlHost struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	audio    sdl.AudioDeviceID
	scale    int32
	on, off  sdl.Color
	keys     map[sdl.Keycode]uint8

	audioBytes []byte
}

func newSDLHost(title string, scale int, opts emu.Options) (*sdlHost, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(emu.ScreenWidth*scale), int32(emu.MaxScreenHeight*scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     emu.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  1024,
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	sdl.PauseAudioDevice(dev, false)

	keys := make(map[sdl.Keycode]uint8, emu.KeyCount)
	for k, keyName := range adapter.StandardLayout {
		keys[sdl.GetKeyFromName(keyName)] = uint8(k)
	}

	return &sdlHost{
		window:     window,
		renderer:   renderer,
		audio:      dev,
		scale:      int32(scale),
		on:         sdl.Color{R: opts.OnColor.R, G: opts.OnColor.G, B: opts.OnColor.B, A: 0xFF},
		off:        sdl.Color{R: opts.OffColor.R, G: opts.OffColor.G, B: opts.OffColor.B, A: 0xFF},
		keys:       keys,
		audioBytes: make([]byte, 0, 4096),
	}, nil
}

// PollEvents drains the SDL event queue into the keypad. It returns true
// when the window is closed or Escape is pressed.
func (h *sdlHost) PollEvents(m *emu.Machine) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				return true
			}
			if k, ok := h.keys[ev.Keysym.Sym]; ok {
				m.SetKey(k, ev.Type == sdl.KEYDOWN)
			}
		}
	}
	return false
}

// Draw clears to the off colour and fills one rectangle per lit pixel.
func (h *sdlHost) Draw(d *emu.Display) {
	h.renderer.SetDrawColor(h.off.R, h.off.G, h.off.B, h.off.A)
	h.renderer.Clear()

	h.renderer.SetDrawColor(h.on.R, h.on.G, h.on.B, h.on.A)
	for y := 0; y < emu.DisplayHeight; y++ {
		for x := 0; x < emu.DisplayWidth; x++ {
			if !d.Pixel(x, y) {
				continue
			}
			h.renderer.FillRect(&sdl.Rect{
				X: int32(x) * h.scale,
				Y: int32(y) * h.scale,
				W: h.scale,
				H: h.scale,
			})
		}
	}
	h.renderer.Present()
}

// QueueAudio sends int16 stereo samples to the device, dropping the frame
// when the device already holds enough audio.
func (h *sdlHost) QueueAudio(samples []int16) error {
	if len(samples) == 0 || sdl.GetQueuedAudioSize(h.audio) > maxQueuedAudio {
		return nil
	}
	h.audioBytes = h.audioBytes[:0]
	for _, sample := range samples {
		h.audioBytes = append(h.audioBytes, byte(sample), byte(sample>>8))
	}
	return sdl.QueueAudio(h.audio, h.audioBytes)
}

// Close frees all resources created by SDL.
func (h *sdlHost) Close() {
	sdl.CloseAudioDevice(h.audio)
	h.renderer.Destroy()
	h.window.Destroy()
	sdl.Quit()
}
