package testutil

import (
	"encoding/binary"
	"errors"
	"io"
)

// WAVSpec describes a fixture container. Fields left zero get PCM defaults.
type WAVSpec struct {
	AudioFormat uint16
	Channels    int
	BitDepth    int
	SampleRate  int
}

// BuildWAV returns a canonical 44-byte-header WAV file wrapping payload
// verbatim. Payload and header fields are not cross-checked, so malformed
// fixtures can be built.
func BuildWAV(spec WAVSpec, payload []byte) []byte {
	if spec.AudioFormat == 0 {
		spec.AudioFormat = 1
	}
	if spec.SampleRate == 0 {
		spec.SampleRate = 48000
	}
	blockAlign := spec.Channels * spec.BitDepth / 8
	padding := len(payload) % 2

	out := make([]byte, 44, 44+len(payload)+padding)
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(payload)+padding))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], spec.AudioFormat)
	binary.LittleEndian.PutUint16(out[22:24], uint16(spec.Channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(spec.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(spec.SampleRate*blockAlign))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], uint16(spec.BitDepth))
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(payload)))
	out = append(out, payload...)
	if padding == 1 {
		out = append(out, 0)
	}
	return out
}

// SeekBuffer is an in-memory io.ReadWriteSeeker.
type SeekBuffer struct {
	data []byte
	pos  int64
}

// NewSeekBuffer returns a SeekBuffer holding a copy of b.
func NewSeekBuffer(b []byte) *SeekBuffer {
	return &SeekBuffer{data: append([]byte(nil), b...)}
}

// Bytes returns the buffer contents.
func (s *SeekBuffer) Bytes() []byte {
	return s.data
}

// Write implements io.Writer, growing the buffer as needed.
func (s *SeekBuffer) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.data)) {
		grown := make([]byte, end)
		copy(grown, s.data)
		s.data = grown
	}
	copy(s.data[s.pos:end], p)
	s.pos = end
	return len(p), nil
}

// Read implements io.Reader.
func (s *SeekBuffer) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (s *SeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = s.pos
	case io.SeekEnd:
		base = int64(len(s.data))
	default:
		return 0, errors.New("testutil: invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("testutil: negative position")
	}
	s.pos = next
	return next, nil
}

// FailingWriteSeeker fails every write after the first Limit bytes.
type FailingWriteSeeker struct {
	Limit   int
	written int
}

// ErrInjected is returned by FailingWriteSeeker.
var ErrInjected = errors.New("testutil: injected write failure")

// Write implements io.Writer.
func (f *FailingWriteSeeker) Write(p []byte) (int, error) {
	if f.written+len(p) > f.Limit {
		return 0, ErrInjected
	}
	f.written += len(p)
	return len(p), nil
}

// Seek implements io.Seeker.
func (f *FailingWriteSeeker) Seek(offset int64, _ int) (int64, error) {
	return offset, nil
}
