package emu

import (
	"image"
	"image/color"
)

const (
	DisplayWidth  = 64
	DisplayHeight = 32
	DisplaySize   = DisplayWidth * DisplayHeight
)

// Display is the 64x32 monochrome framebuffer. Cells are 0 or 1, stored
// row-major at y*DisplayWidth+x.
type Display struct {
	cells [DisplaySize]uint8
}

// NewDisplay returns a cleared display.
func NewDisplay() *Display {
	return &Display{}
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	d.cells = [DisplaySize]uint8{}
}

// DrawSprite XORs sprite onto the display with its top-left corner at
// (x mod 64, y mod 32). Each byte is one row, most significant bit leftmost.
// Pixels past an edge wrap around individually unless clip is set, in which
// case they are dropped. It reports whether any lit pixel was turned off.
func (d *Display) DrawSprite(x, y uint8, sprite []uint8, clip bool) bool {
	ox := int(x) % DisplayWidth
	oy := int(y) % DisplayHeight
	collision := false

	for row, bits := range sprite {
		py := oy + row
		if py >= DisplayHeight {
			if clip {
				break
			}
			py %= DisplayHeight
		}

		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := ox + col
			if px >= DisplayWidth {
				if clip {
					break
				}
				px %= DisplayWidth
			}

			idx := py*DisplayWidth + px
			if d.cells[idx] != 0 {
				collision = true
			}
			d.cells[idx] ^= 1
		}
	}

	return collision
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap.
func (d *Display) Pixel(x, y int) bool {
	return d.cells[(y&(DisplayHeight-1))*DisplayWidth+(x&(DisplayWidth-1))] != 0
}

// Pixels returns a snapshot of all cells.
func (d *Display) Pixels() [DisplaySize]uint8 {
	return d.cells
}

// RenderRGBA paints every cell into dst using on and off as the pixel
// colours. dst must be at least DisplayWidth x DisplayHeight.
func (d *Display) RenderRGBA(dst *image.RGBA, on, off color.RGBA) {
	for y := 0; y < DisplayHeight; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < DisplayWidth; x++ {
			c := off
			if d.cells[y*DisplayWidth+x] != 0 {
				c = on
			}
			i := x * 4
			row[i] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = c.A
		}
	}
}
