// Package emuios provides a gomobile-compatible interface to the emulator.
package emuios

import (
	"fmt"
	"hash/crc32"
	"image/color"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/user-none/ecosmac/emu"
	"github.com/user-none/ecosmac/romloader"
)

// fs is the filesystem ROMs are read from and stored to.
var fs = afero.NewOsFs()

// ExtractResult contains the result of ROM extraction
type ExtractResult struct {
	Crc32    string // Hex string, e.g., "AABBCCDD"
	Filename string // Original filename from archive, e.g., "Pong (1990).ch8"
}

// currentEmu holds the emulator state (unexported)
var currentEmu *emulatorState

type emulatorState struct {
	emulator  emu.Emulator
	frameData []byte
	audioData []byte
	stateData []byte
}

// InitFromPath creates an emulator from a ROM file path with the default
// CPU rate and canonical quirks.
// Automatically extracts from ZIP/7z/gzip/RAR if needed.
// Returns true on success, false on error.
func InitFromPath(path string) bool {
	return InitWithOptions(path, emu.DefaultCPUHz, emu.ProfileCanonical)
}

// InitWithOptions creates an emulator running cpuHz instructions per second
// with the named quirk profile. Returns false on error or an unknown profile.
func InitWithOptions(path string, cpuHz int, profile string) bool {
	rom, _, err := romloader.LoadROMFs(fs, path)
	if err != nil {
		return false
	}

	quirks, ok := emu.QuirksForProfile(profile)
	if !ok {
		return false
	}
	opts := emu.DefaultOptions()
	opts.CPUHz = cpuHz
	opts.Quirks = quirks

	e, err := emu.NewEmulatorWithOptions(rom, emu.DefaultRegion(), opts)
	if err != nil {
		return false
	}
	currentEmu = &emulatorState{emulator: e}
	return true
}

// Close releases the emulator.
func Close() {
	currentEmu = nil
}

// Reset restarts the loaded program.
func Reset() {
	if currentEmu != nil {
		currentEmu.emulator.Reset()
	}
}

// RunFrame executes one frame of emulation.
func RunFrame() {
	if currentEmu == nil {
		return
	}
	currentEmu.emulator.RunFrame()

	fullBuffer := currentEmu.emulator.GetFramebuffer()
	activeBytes := currentEmu.emulator.GetFramebufferStride() * currentEmu.emulator.GetActiveHeight()
	currentEmu.frameData = fullBuffer[:activeBytes]

	// Convert audio samples to bytes
	samples := currentEmu.emulator.GetAudioSamples()
	if len(samples) > 0 {
		currentEmu.audioData = make([]byte, len(samples)*2)
		for i, s := range samples {
			currentEmu.audioData[i*2] = byte(s)
			currentEmu.audioData[i*2+1] = byte(s >> 8)
		}
	} else {
		currentEmu.audioData = nil
	}
}

// FrameWidth returns the display width (always 64).
func FrameWidth() int {
	return emu.ScreenWidth
}

// FrameHeight returns the display height (always 32).
func FrameHeight() int {
	return emu.MaxScreenHeight
}

// GetFrameData returns the RGBA frame buffer.
func GetFrameData() []byte {
	if currentEmu == nil {
		return nil
	}
	return currentEmu.frameData
}

// GetAudioData returns the entire audio buffer.
func GetAudioData() []byte {
	if currentEmu == nil {
		return nil
	}
	return currentEmu.audioData
}

// SetInput sets the button bitmask: bits 0-3 are the d-pad, bit 4+k is
// hex key k.
func SetInput(buttons int) {
	if currentEmu != nil {
		currentEmu.emulator.SetInput(0, uint32(buttons))
	}
}

// SetKey presses or releases a single hex key.
func SetKey(key int, pressed bool) {
	if currentEmu != nil {
		currentEmu.emulator.Machine().SetKey(uint8(key), pressed)
	}
}

// SoundActive reports whether the buzzer is sounding.
func SoundActive() bool {
	if currentEmu == nil {
		return false
	}
	return currentEmu.emulator.Machine().SoundActive()
}

// SetPalette sets the lit and unlit pixel colours, each as 0xRRGGBB.
// GetFrameData reflects the change immediately.
func SetPalette(on, off int) {
	if currentEmu == nil {
		return
	}
	currentEmu.emulator.SetPalette(rgb(on), rgb(off))

	fullBuffer := currentEmu.emulator.GetFramebuffer()
	activeBytes := currentEmu.emulator.GetFramebufferStride() * currentEmu.emulator.GetActiveHeight()
	currentEmu.frameData = fullBuffer[:activeBytes]
}

func rgb(v int) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

// SaveState creates a save state. Returns true on success.
func SaveState() bool {
	if currentEmu == nil {
		return false
	}
	data, err := currentEmu.emulator.Serialize()
	if err != nil {
		currentEmu.stateData = nil
		return false
	}
	currentEmu.stateData = data
	return true
}

// StateLen returns the length of the last saved state.
func StateLen() int {
	if currentEmu == nil {
		return 0
	}
	return len(currentEmu.stateData)
}

// StateByte returns a single byte from the saved state at index i.
func StateByte(i int) int {
	if currentEmu == nil || i < 0 || i >= len(currentEmu.stateData) {
		return 0
	}
	return int(currentEmu.stateData[i])
}

// LoadState loads a save state. Returns true on success.
func LoadState(data []byte) bool {
	if currentEmu == nil {
		return false
	}
	return currentEmu.emulator.Deserialize(data) == nil
}

// GetFPS returns the target frame rate.
func GetFPS() int {
	return emu.TimerHz
}

// GetCRC32FromPath calculates the CRC32 checksum of a ROM file.
// Automatically extracts from ZIP/7z/gzip/RAR if needed.
// Returns -1 on error.
func GetCRC32FromPath(path string) int64 {
	rom, _, err := romloader.LoadROMFs(fs, path)
	if err != nil {
		return -1
	}

	return int64(crc32.ChecksumIEEE(rom))
}

// ExtractAndStoreROM extracts a ROM from an archive (or copies a raw ROM),
// calculates its CRC32, and stores it as {destDir}/{CRC32}.ch8.
// If a file with the same CRC32 already exists, it skips writing.
// Returns the CRC32 and original filename on success, or an error.
func ExtractAndStoreROM(srcPath, destDir string) (*ExtractResult, error) {
	rom, filename, err := romloader.LoadROMFs(fs, srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ROM: %w", err)
	}

	crcHex := fmt.Sprintf("%08X", crc32.ChecksumIEEE(rom))
	destPath := filepath.Join(destDir, crcHex+".ch8")

	// Skip write if file already exists (same CRC = same content)
	exists, err := afero.Exists(fs, destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check ROM: %w", err)
	}
	if exists {
		return &ExtractResult{Crc32: crcHex, Filename: filename}, nil
	}

	if err := afero.WriteFile(fs, destPath, rom, 0644); err != nil {
		return nil, fmt.Errorf("failed to write ROM: %w", err)
	}

	return &ExtractResult{Crc32: crcHex, Filename: filename}, nil
}
