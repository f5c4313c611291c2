//go:build !libretro

package cli

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// maxQueuedBytes caps the queue at ~100ms of 48kHz stereo int16 audio.
const maxQueuedBytes = 48000 * 4 / 10

// AudioPlayer streams the emulator's int16 stereo samples through Ebiten's
// audio context.
type AudioPlayer struct {
	player *audio.Player

	mu     sync.Mutex
	queue  []byte
	closed bool
}

// NewAudioPlayer opens an audio player at sampleRate.
func NewAudioPlayer(sampleRate int) (*AudioPlayer, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}

	a := &AudioPlayer{queue: make([]byte, 0, maxQueuedBytes)}
	player, err := ctx.NewPlayer(a)
	if err != nil {
		return nil, err
	}
	player.SetBufferSize(50 * time.Millisecond)
	player.Play()
	a.player = player
	return a, nil
}

// QueueSamples converts int16 stereo samples to little-endian bytes and
// queues them. The oldest audio is dropped when the queue is full.
func (a *AudioPlayer) QueueSamples(samples []int16) {
	if len(samples) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, sample := range samples {
		a.queue = append(a.queue, byte(sample), byte(sample>>8))
	}
	if over := len(a.queue) - maxQueuedBytes; over > 0 {
		over = (over + 3) &^ 3 // keep whole stereo frames
		a.queue = append(a.queue[:0], a.queue[over:]...)
	}
}

// Read implements io.Reader for the Ebiten player. It pads with silence
// when the queue runs dry so the player never sees EOF.
func (a *AudioPlayer) Read(p []byte) (int, error) {
	a.mu.Lock()
	n := copy(p, a.queue)
	a.queue = append(a.queue[:0], a.queue[n:]...)
	a.mu.Unlock()

	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

// Close stops playback.
func (a *AudioPlayer) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	if a.player != nil {
		a.player.Close()
	}
}
