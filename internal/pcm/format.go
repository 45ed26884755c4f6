// Package pcm decodes uncompressed PCM audio into normalized float samples.
//
// Samples of 8, 16, 24 and 32 bits are supported. Only the first channel of a
// multi-channel stream is kept; the remaining channels are discarded.
package pcm

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnsupportedFormat is returned for sample widths or container
	// encodings the decoder does not handle.
	ErrUnsupportedFormat = errors.New("unsupported PCM format")

	// ErrMalformed is returned when a container or payload is structurally invalid.
	ErrMalformed = errors.New("malformed PCM data")

	// ErrIO is returned when reading or writing a container fails.
	ErrIO = errors.New("I/O error")
)

// Format describes a raw PCM stream.
type Format struct {
	// Channels is the number of interleaved channels.
	Channels int

	// Width is the sample width in bytes (1, 2, 3 or 4).
	Width int

	// SampleRate is the sample rate in Hz. It is carried through but not
	// interpreted by the decoder.
	SampleRate int

	// Frames is the number of frames in the payload.
	Frames int
}

// FrameSize returns the number of bytes per interleaved frame.
func (f Format) FrameSize() int {
	return f.Channels * f.Width
}

// BitDepth returns the sample width in bits.
func (f Format) BitDepth() int {
	return f.Width * bitsPerByte
}

// Validate checks that the format is decodable and that payloadLen holds an
// exact number of frames.
func (f Format) Validate(payloadLen int) error {
	if _, err := fullScale(f.Width); err != nil {
		return err
	}
	if f.Channels < 1 {
		return fmt.Errorf("%w: channel count %d", ErrMalformed, f.Channels)
	}
	if payloadLen%f.FrameSize() != 0 {
		return fmt.Errorf("%w: payload of %d bytes is not a multiple of the %d-byte frame",
			ErrMalformed, payloadLen, f.FrameSize())
	}
	return nil
}

// Buffer is a decoded single-channel signal.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	return len(b.Samples)
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// fullScale returns the divisor that maps a full-scale integer sample of the
// given width to 1.0.
func fullScale(width int) (float64, error) {
	switch width {
	case width8:
		return fullScale8, nil
	case width16:
		return fullScale16, nil
	case width24:
		return fullScale24, nil
	case width32:
		return fullScale32, nil
	default:
		return 0, fmt.Errorf("%w: %d-byte samples", ErrUnsupportedFormat, width)
	}
}
