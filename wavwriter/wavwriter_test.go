package wavwriter

import (
	"encoding/binary"
	"testing"

	gowav "github.com/go-audio/wav"
	"github.com/spf13/afero"
)

const wavHeaderSize = 44

func TestWavWriter_WritesHeaderAndSamples(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := New(fs, "/out.wav", 48000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	w.SetAudio([]int16{100, -100, 200, -200})
	w.SetAudio([]int16{300, -300})
	if w.Frames() != 3 {
		t.Fatalf("Frames() = %d, want 3", w.Frames())
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := afero.ReadFile(fs, "/out.wav")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("missing RIFF/WAVE header: % X", data[:12])
	}
	if len(data) != wavHeaderSize+3*4 {
		t.Fatalf("file size = %d, want %d", len(data), wavHeaderSize+3*4)
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 48000 {
		t.Errorf("sample rate = %d, want 48000", rate)
	}
	if ch := binary.LittleEndian.Uint16(data[22:24]); ch != 2 {
		t.Errorf("channels = %d, want 2", ch)
	}

	first := int16(binary.LittleEndian.Uint16(data[wavHeaderSize:]))
	second := int16(binary.LittleEndian.Uint16(data[wavHeaderSize+2:]))
	if first != 100 || second != -100 {
		t.Errorf("first frame = (%d, %d), want (100, -100)", first, second)
	}
}

func TestWavWriter_DropsOddSample(t *testing.T) {
	w, err := New(afero.NewMemMapFs(), "/out.wav", 48000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.SetAudio([]int16{1, 2, 3})
	if w.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", w.Frames())
	}
}

func TestWavWriter_Reset(t *testing.T) {
	w, err := New(afero.NewMemMapFs(), "/out.wav", 48000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.SetAudio([]int16{1, 2})
	w.Reset()
	if w.Frames() != 0 {
		t.Errorf("Frames() after Reset = %d, want 0", w.Frames())
	}
}

func TestWavWriter_InvalidRate(t *testing.T) {
	if _, err := New(afero.NewMemMapFs(), "/out.wav", 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

func TestWavWriter_DecodesWithIndependentReader(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := New(fs, "/beep.wav", 48000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.SetAudio([]int16{1000, 1000, -1000, -1000, 0, 0, 500, 500})
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := fs.Open("/beep.wav")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("decoder rejected the file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer failed: %v", err)
	}
	if dec.NumChans != 2 || dec.SampleRate != 48000 || dec.BitDepth != 16 {
		t.Errorf("format = %d ch, %d Hz, %d bit", dec.NumChans, dec.SampleRate, dec.BitDepth)
	}
	want := []int{1000, 1000, -1000, -1000, 0, 0, 500, 500}
	if len(buf.Data) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(want))
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], want[i])
		}
	}
}
