package emu

import (
	"image"
	"image/color"
	"testing"
)

func TestDisplay_DrawSpriteRows(t *testing.T) {
	d := NewDisplay()

	// Glyph for "0" at (10, 4)
	glyph := fontSet[0:GlyphSize]
	if d.DrawSprite(10, 4, glyph, false) {
		t.Fatal("unexpected collision on empty display")
	}

	for row, bits := range glyph {
		for col := 0; col < 8; col++ {
			want := bits&(0x80>>col) != 0
			if got := d.Pixel(10+col, 4+row); got != want {
				t.Errorf("pixel (%d,%d): expected %v, got %v", 10+col, 4+row, want, got)
			}
		}
	}
}

func TestDisplay_CollisionOnlyWhenPixelTurnsOff(t *testing.T) {
	d := NewDisplay()
	d.DrawSprite(0, 0, []uint8{0xF0}, false)

	// Overlaps nothing that is lit
	if d.DrawSprite(0, 0, []uint8{0x0F}, false) {
		t.Error("disjoint sprite reported a collision")
	}
	// Overlaps one lit pixel
	if !d.DrawSprite(0, 0, []uint8{0x80}, false) {
		t.Error("overlapping sprite did not report a collision")
	}
	if d.Pixel(0, 0) {
		t.Error("pixel (0,0) should have been turned off")
	}
}

func TestDisplay_StartCoordinatesWrap(t *testing.T) {
	d := NewDisplay()
	d.DrawSprite(64+3, 32+2, []uint8{0x80}, false)

	if !d.Pixel(3, 2) {
		t.Error("expected pixel (3,2) lit")
	}
}

func TestDisplay_PixelsIsSnapshot(t *testing.T) {
	d := NewDisplay()
	d.DrawSprite(0, 0, []uint8{0x80}, false)

	snap := d.Pixels()
	if snap[0] != 1 {
		t.Fatalf("snapshot[0]: expected 1, got %d", snap[0])
	}

	d.Clear()
	if snap[0] != 1 {
		t.Error("snapshot changed after Clear")
	}
	if d.Pixels()[0] != 0 {
		t.Error("display not cleared")
	}
}

func TestDisplay_RenderRGBA(t *testing.T) {
	d := NewDisplay()
	d.DrawSprite(1, 2, []uint8{0x80}, false)

	on := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}
	off := color.RGBA{R: 0x01, G: 0x02, B: 0x03, A: 0xFF}
	img := image.NewRGBA(image.Rect(0, 0, DisplayWidth, DisplayHeight))
	d.RenderRGBA(img, on, off)

	if got := img.RGBAAt(1, 2); got != on {
		t.Errorf("lit pixel: expected %v, got %v", on, got)
	}
	if got := img.RGBAAt(0, 0); got != off {
		t.Errorf("unlit pixel: expected %v, got %v", off, got)
	}
	if got := img.RGBAAt(63, 31); got != off {
		t.Errorf("last pixel: expected %v, got %v", off, got)
	}
}
