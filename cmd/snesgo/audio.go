package main

import (
	"io"
	"sync"
)

// audioStream is an io.Reader-backed ring buffer feeding ebiten's
// streaming audio player: RunFrame's PCM output is pushed in after
// each frame, Read drains it for the player's pull-based Stream
// interface, padding with silence when the emulator is running ahead
// of the audio callback.
type audioStream struct {
	mu  sync.Mutex
	buf []byte
}

// push appends one frame's interleaved stereo int16 samples, little-endian.
func (s *audioStream) push(samples []int16) {
	if len(samples) == 0 {
		return
	}
	b := make([]byte, len(samples)*2)
	for i, v := range samples {
		b[i*2] = byte(v)
		b[i*2+1] = byte(v >> 8)
	}

	s.mu.Lock()
	s.buf = append(s.buf, b...)
	s.mu.Unlock()
}

func (s *audioStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	if n < len(p) {
		for i := n; i < len(p); i++ {
			p[i] = 0
		}
		n = len(p)
	}
	return n, nil
}

var _ io.Reader = (*audioStream)(nil)
