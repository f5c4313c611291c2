//go:build !libretro && !ios

// Package ebiten provides an Ebiten-specific wrapper for the emulator.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/ecosmac/emu"
)

// Emulator wraps emu.Emulator with Ebiten-specific functionality
type Emulator struct {
	*emu.Emulator

	offscreen *ebiten.Image           // Offscreen buffer for native resolution rendering
	drawOpts  ebiten.DrawImageOptions // Pre-allocated draw options to avoid per-frame allocation
}

// NewEmulator wraps e for Ebiten rendering.
// Audio is managed separately via the runner's audio player.
func NewEmulator(e *emu.Emulator) *Emulator {
	return &Emulator{Emulator: e}
}

// DrawToScreen renders the emulator framebuffer to the given screen.
// Handles scaling and centering with nearest filtering so pixels stay square.
func (e *Emulator) DrawToScreen(screen *ebiten.Image) {
	srcImage := e.GetFramebufferImage()
	if srcImage == nil {
		return
	}

	// Calculate scaling to fit window while preserving aspect ratio
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	nativeW := float64(emu.ScreenWidth)
	nativeH := float64(e.GetActiveHeight())

	scaleX := float64(screenW) / nativeW
	scaleY := float64(screenH) / nativeH
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	// Calculate offset to center the image
	scaledW := nativeW * scale
	scaledH := nativeH * scale
	offsetX := (float64(screenW) - scaledW) / 2
	offsetY := (float64(screenH) - scaledH) / 2

	// Draw scaled image centered in window using pre-allocated options
	e.drawOpts = ebiten.DrawImageOptions{}
	e.drawOpts.GeoM.Scale(scale, scale)
	e.drawOpts.GeoM.Translate(offsetX, offsetY)
	e.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(srcImage, &e.drawOpts)
}

// Layout returns the window size so scaling is controlled in DrawToScreen.
func (e *Emulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// GetFramebufferImage returns the framebuffer as an ebiten.Image at native
// resolution.
func (e *Emulator) GetFramebufferImage() *ebiten.Image {
	activeHeight := e.GetActiveHeight()

	// Create or resize offscreen buffer if needed
	if e.offscreen == nil || e.offscreen.Bounds().Dy() != activeHeight {
		e.offscreen = ebiten.NewImage(emu.ScreenWidth, activeHeight)
	}

	fb := e.GetFramebuffer()
	stride := e.GetFramebufferStride()
	requiredLen := stride * activeHeight
	if len(fb) < requiredLen {
		return nil // Buffer too small
	}
	e.offscreen.WritePixels(fb[:requiredLen])
	return e.offscreen
}
