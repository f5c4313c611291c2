//go:build !libretro

// Package cli provides a command-line runner for the emulator.
// It handles input polling and runs the emulator in a window without the full UI.
package cli

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/ecosmac/adapter"
	ebitenbridge "github.com/user-none/ecosmac/bridge/ebiten"
	"github.com/user-none/ecosmac/emu"
	"github.com/user-none/ecosmac/wavwriter"
)

// Runner wraps an emulator for command-line mode.
// It handles input polling (emulator doesn't poll input itself).
// This follows the libretro pattern where the frontend is responsible
// for polling input and passing it to the emulator via SetInput().
type Runner struct {
	emulator    *ebitenbridge.Emulator
	audioPlayer *AudioPlayer
	recorder    *wavwriter.WavWriter
	logger      *log.Logger
	keys        [emu.KeyCount]ebiten.Key
	paused      bool
}

// NewRunner creates a new Runner wrapping the given emulator. recorder may
// be nil.
func NewRunner(e *emu.Emulator, recorder *wavwriter.WavWriter, logger *log.Logger) (*Runner, error) {
	keys, err := keyTable(adapter.StandardLayout)
	if err != nil {
		return nil, err
	}
	player, err := NewAudioPlayer(emu.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	return &Runner{
		emulator:    ebitenbridge.NewEmulator(e),
		audioPlayer: player,
		recorder:    recorder,
		logger:      logger,
		keys:        keys,
	}, nil
}

// Close cleans up the runner's resources and writes any recording.
func (r *Runner) Close() error {
	if r.audioPlayer != nil {
		r.audioPlayer.Close()
		r.audioPlayer = nil
	}
	if r.recorder != nil {
		rec := r.recorder
		r.recorder = nil
		if r.logger != nil {
			r.logger.Info("Writing audio recording", log.Int("frames", rec.Frames()))
		}
		return rec.Close()
	}
	return nil
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		r.paused = !r.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		r.emulator.Reset()
		if r.recorder != nil {
			r.recorder.Reset()
		}
	}
	if r.paused || !ebiten.IsFocused() {
		return nil
	}

	// Poll input (runner responsibility, not emulator)
	r.emulator.SetInput(0, r.pollInput())

	// Run one frame of emulation
	r.emulator.RunFrame()

	samples := r.emulator.GetAudioSamples()
	r.audioPlayer.QueueSamples(samples)
	if r.recorder != nil {
		r.recorder.SetAudio(samples)
	}

	return nil
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.emulator.DrawToScreen(screen)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.emulator.Layout(outsideWidth, outsideHeight)
}

// pollInput reads keyboard and gamepad input into an eblitui button mask.
func (r *Runner) pollInput() uint32 {
	var buttons uint32
	for k, key := range r.keys {
		if ebiten.IsKeyPressed(key) {
			buttons |= 1 << adapter.KeyButtonID(k)
		}
	}

	// Gamepad support (all connected gamepads)
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, m := range gamepadMap {
			if ebiten.IsStandardGamepadButtonPressed(id, m.button) {
				buttons |= 1 << m.bit
			}
		}

		// Left analog stick (with deadzone)
		const deadzone = 0.5
		axisX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		axisY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if axisX < -deadzone {
			buttons |= 1 << emucore.ButtonLeft
		}
		if axisX > deadzone {
			buttons |= 1 << emucore.ButtonRight
		}
		if axisY < -deadzone {
			buttons |= 1 << emucore.ButtonUp
		}
		if axisY > deadzone {
			buttons |= 1 << emucore.ButtonDown
		}
	}

	return buttons
}
