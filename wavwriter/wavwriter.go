// Package wavwriter records the emulator's stereo audio output to a WAV file.
package wavwriter

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/youpy/go-wav"
)

const (
	channels      = 2
	bitsPerSample = 16
)

// WavWriter buffers interleaved stereo int16 samples and writes them out
// when closed.
type WavWriter struct {
	fs         afero.Fs
	filename   string
	sampleRate uint32
	buffer     []wav.Sample
}

// New creates a recorder writing filename on fs at sampleRate.
func New(fs afero.Fs, filename string, sampleRate int) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wavwriter: invalid sample rate %d", sampleRate)
	}
	return &WavWriter{
		fs:         fs,
		filename:   filename,
		sampleRate: uint32(sampleRate),
		buffer:     make([]wav.Sample, 0),
	}, nil
}

// SetAudio appends one frame of interleaved left/right samples. A trailing
// odd sample is dropped.
func (aw *WavWriter) SetAudio(samples []int16) {
	for i := 0; i+1 < len(samples); i += 2 {
		w := wav.Sample{}
		w.Values[0] = int(samples[i])
		w.Values[1] = int(samples[i+1])
		aw.buffer = append(aw.buffer, w)
	}
}

// Frames returns the number of buffered stereo frames.
func (aw *WavWriter) Frames() int {
	return len(aw.buffer)
}

// Close writes the buffered audio to the file.
func (aw *WavWriter) Close() (rerr error) {
	f, err := aw.fs.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), channels, aw.sampleRate, bitsPerSample)
	if enc == nil {
		return errors.New("wavwriter: bad parameters for wav encoding")
	}
	if err := enc.WriteSamples(aw.buffer); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	return nil
}

// Reset discards buffered audio.
func (aw *WavWriter) Reset() {
	aw.buffer = aw.buffer[:0]
}
