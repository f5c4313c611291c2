package emu

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/retroenv/retrogolib/log"
	emucore "github.com/user-none/eblitui/api"
)

// Compile-time interface checks.
var _ emucore.Emulator = (*Emulator)(nil)
var _ emucore.SaveStater = (*Emulator)(nil)
var _ emucore.MemoryInspector = (*Emulator)(nil)
var _ emucore.MemoryMapper = (*Emulator)(nil)

const (
	ScreenWidth     = DisplayWidth
	MaxScreenHeight = DisplayHeight
	SampleRate      = 48000
)

// Default pixel colours.
var (
	DefaultOnColor  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	DefaultOffColor = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)

// Tracer receives every instruction before it executes.
type Tracer interface {
	Trace(pc, opcode uint16)
}

// Options configures a new Emulator.
type Options struct {
	CPUHz    int     // Instructions per second; clamped to [MinCPUHz, MaxCPUHz]
	Quirks   Quirks  // Interpreter behaviour variants
	Random   Random  // Source for RND; nil seeds from the clock
	Volume   float64 // Output gain in [0, 1]
	OnColor  color.RGBA
	OffColor color.RGBA
}

// DefaultOptions returns canonical quirks at DefaultCPUHz.
func DefaultOptions() Options {
	return Options{
		CPUHz:    DefaultCPUHz,
		Volume:   0.5,
		OnColor:  DefaultOnColor,
		OffColor: DefaultOffColor,
	}
}

// Emulator wraps a Machine with the frame loop, audio and video output
// expected by eblitui frontends.
type Emulator struct {
	machine *Machine
	beeper  *Beeper

	region         Region
	cpuHz          int
	cyclesPerFrame int
	volume         float64
	onColor        color.RGBA
	offColor       color.RGBA

	framebuffer *image.RGBA
	audioBuffer []int16 // int16 stereo output for external consumption

	logger *log.Logger
	tracer Tracer
}

// NewEmulator creates an emulator with default options and loads rom.
func NewEmulator(rom []byte, region Region) (Emulator, error) {
	return NewEmulatorWithOptions(rom, region, DefaultOptions())
}

// NewEmulatorWithOptions creates an emulator and loads rom. A zero CPUHz
// selects DefaultCPUHz and identical colours select the default palette.
func NewEmulatorWithOptions(rom []byte, region Region, opts Options) (Emulator, error) {
	if opts.CPUHz == 0 {
		opts.CPUHz = DefaultCPUHz
	}
	if opts.OnColor == opts.OffColor {
		opts.OnColor, opts.OffColor = DefaultOnColor, DefaultOffColor
	}

	machine := NewMachine(opts.Quirks, opts.Random)
	if err := machine.LoadROM(rom); err != nil {
		return Emulator{}, err
	}

	e := Emulator{
		machine:     machine,
		beeper:      NewBeeper(),
		region:      region,
		onColor:     opts.OnColor,
		offColor:    opts.OffColor,
		framebuffer: image.NewRGBA(image.Rect(0, 0, ScreenWidth, MaxScreenHeight)),
		// ~800 stereo samples per frame at 48kHz/60fps
		audioBuffer: make([]int16, 0, samplesPerTick*4),
	}
	e.SetCPUHz(opts.CPUHz)
	e.SetVolume(opts.Volume)
	e.render()

	return e, nil
}

// Machine returns the interpreter state driven by this emulator.
func (e *Emulator) Machine() *Machine {
	return e.machine
}

// SetLogger attaches a logger for instruction faults. nil disables logging.
func (e *Emulator) SetLogger(logger *log.Logger) {
	e.logger = logger
}

// SetTracer attaches an instruction tracer. nil disables tracing.
func (e *Emulator) SetTracer(t Tracer) {
	e.tracer = t
}

// SetCPUHz changes the instruction rate.
func (e *Emulator) SetCPUHz(hz int) {
	e.cpuHz = ClampCPUHz(hz)
	e.cyclesPerFrame = CyclesPerFrame(e.cpuHz)
}

// CPUHz returns the instruction rate.
func (e *Emulator) CPUHz() int {
	return e.cpuHz
}

// SetVolume sets the output gain, clamped to [0, 1].
func (e *Emulator) SetVolume(v float64) {
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	e.volume = v
}

// SetPalette changes the colours used for lit and unlit pixels.
func (e *Emulator) SetPalette(on, off color.RGBA) {
	e.onColor = on
	e.offColor = off
	e.render()
}

// RunFrame executes one frame of emulation: CyclesPerFrame instructions,
// one timer tick, then audio and video output.
func (e *Emulator) RunFrame() {
	e.audioBuffer = e.audioBuffer[:0]

	cpu := e.machine.cpu
	for i := 0; i < e.cyclesPerFrame; i++ {
		if e.tracer != nil {
			e.tracer.Trace(cpu.PC, Fetch(e.machine.bus, cpu.PC))
		}
		if err := cpu.Step(); err != nil {
			e.logStepError(err)
		}
	}

	e.machine.TickTimers()
	e.beeper.SetActive(e.machine.SoundActive())

	// Convert float32 mono samples to int16 stereo
	for _, sample := range e.beeper.Render() {
		intSample := int16(sample * 32767 * float32(e.volume))
		e.audioBuffer = append(e.audioBuffer, intSample, intSample)
	}

	e.render()
}

func (e *Emulator) render() {
	e.machine.display.RenderRGBA(e.framebuffer, e.onColor, e.offColor)
}

func (e *Emulator) logStepError(err error) {
	if e.logger == nil {
		return
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		e.logger.Error("Instruction failed", log.Err(err))
		return
	}

	if errors.Is(stepErr.Err, ErrUnassignedOpcode) {
		e.logger.Debug("Unassigned opcode",
			log.Hex("pc", stepErr.PC),
			log.Hex("opcode", stepErr.Opcode))
		return
	}

	e.logger.Warn(stepErr.Err.Error(),
		log.Hex("pc", stepErr.PC),
		log.Hex("opcode", stepErr.Opcode),
		log.Uint8("sp", e.machine.cpu.SP),
		log.String("stack", fmt.Sprintf("%03X", e.machine.cpu.Stack())))
}

// Reset restarts the loaded program from power-on state.
func (e *Emulator) Reset() {
	e.machine.Reset()
	e.beeper.Reset()
	e.audioBuffer = e.audioBuffer[:0]
	e.render()
}

// SetInput unpacks a button bitmask into the keypad.
// Bits 0-3 are the d-pad and press keys 2, 8, 4 and 6.
// Bit 4+k presses hex key k.
func (e *Emulator) SetInput(player int, buttons uint32) {
	if player != 0 {
		return
	}

	mask := uint16(buttons >> 4)
	if buttons&(1<<emucore.ButtonUp) != 0 {
		mask |= 1 << 0x2
	}
	if buttons&(1<<emucore.ButtonDown) != 0 {
		mask |= 1 << 0x8
	}
	if buttons&(1<<emucore.ButtonLeft) != 0 {
		mask |= 1 << 0x4
	}
	if buttons&(1<<emucore.ButtonRight) != 0 {
		mask |= 1 << 0x6
	}
	e.machine.keypad.SetMask(mask)
}

// GetFramebuffer returns raw RGBA pixel data for current frame.
func (e *Emulator) GetFramebuffer() []byte {
	return e.framebuffer.Pix
}

// GetFramebufferStride returns the stride (bytes per row) of the framebuffer.
func (e *Emulator) GetFramebufferStride() int {
	return e.framebuffer.Stride
}

// GetActiveHeight returns the display height, which is always 32.
func (e *Emulator) GetActiveHeight() int {
	return MaxScreenHeight
}

// GetAudioSamples returns accumulated audio samples as 16-bit stereo PCM.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.audioBuffer
}

// GetRegion returns the emulator's region setting
func (e *Emulator) GetRegion() Region {
	return e.region
}

// SetRegion stores the region. Timing is unaffected.
func (e *Emulator) SetRegion(region Region) {
	e.region = region
}

// GetTiming returns the frame rate and the number of display lines.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       TimerHz,
		Scanlines: MaxScreenHeight,
	}
}

// Core option keys accepted by SetOption.
const (
	OptionCPUHz                = "cpu_hz"
	OptionProfile              = "quirk_profile"
	OptionVFReset              = "quirk_vf_reset"
	OptionShiftUsesVy          = "quirk_shift_uses_vy"
	OptionJumpUsesVx           = "quirk_jump_uses_vx"
	OptionLoadStoreIncrementsI = "quirk_load_store_increments_i"
	OptionClipSprites          = "quirk_clip_sprites"
)

// SetOption applies a core option change identified by key. Invalid values
// are ignored.
func (e *Emulator) SetOption(key string, value string) {
	cpu := e.machine.cpu
	q := cpu.Quirks()

	switch key {
	case OptionCPUHz:
		if hz, err := strconv.Atoi(value); err == nil {
			e.SetCPUHz(hz)
		}
		return
	case OptionProfile:
		if p, ok := QuirksForProfile(value); ok {
			cpu.SetQuirks(p)
		}
		return
	case OptionVFReset:
		q.VFReset = value == "true"
	case OptionShiftUsesVy:
		q.ShiftUsesVy = value == "true"
	case OptionJumpUsesVx:
		q.JumpUsesVx = value == "true"
	case OptionLoadStoreIncrementsI:
		q.LoadStoreIncrementsI = value == "true"
	case OptionClipSprites:
		q.ClipSprites = value == "true"
	default:
		return
	}
	cpu.SetQuirks(q)
}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}

// =============================================================================
// MemoryInspector interface
// =============================================================================

// ReadMemory reads from a flat address into buf and returns the number
// of bytes read. The flat map is the 4KB address space at 0x000-0xFFF.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	ram := e.machine.mem.GetRAM()
	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		if cur >= MemorySize {
			return count
		}
		buf[i] = ram[cur]
		count++
	}
	return count
}

// =============================================================================
// MemoryMapper interface
// =============================================================================

// MemoryMap returns a list of available memory regions with sizes.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: MemorySize},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	if regionType != emucore.MemorySystemRAM {
		return nil
	}
	ram := e.machine.mem.GetRAM()
	out := make([]byte, len(ram))
	copy(out, ram[:])
	return out
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	if regionType == emucore.MemorySystemRAM {
		copy(e.machine.mem.GetRAM()[:], data)
	}
}
