package calib

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"

	"github.com/tphakala/go-shaper-lut/internal/pcm"
)

// clamp limits x to [-1, 1].
func clamp(x float64) float64 {
	return math.Max(levelMin, math.Min(levelMax, x))
}

// Quantize16 converts x to a 16-bit sample: clamp to [-1, 1], scale by
// 32767 and truncate toward zero.
func Quantize16(x float64) int16 {
	return int16(clamp(x) * fullScale16)
}

// Quantize32 converts x to a 32-bit sample: clamp to [-1, 1], scale by
// 2147483647 in float64 and round to nearest with ties away from zero
// (math.Round). The clamp keeps the result inside the int32 range.
func Quantize32(x float64) int32 {
	return int32(math.Round(clamp(x) * fullScale32))
}

// Quantize converts the plan's samples to integers at its bit depth.
func (p Plan) Quantize() ([]int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	samples := p.Samples()
	out := make([]int, len(samples))
	switch p.BitDepth {
	case BitDepth16:
		for i, s := range samples {
			out[i] = int(Quantize16(s))
		}
	case BitDepth32:
		for i, s := range samples {
			out[i] = int(Quantize32(s))
		}
	}
	return out, nil
}

// IntBuffer returns the quantized signal as a mono go-audio buffer.
func (p Plan) IntBuffer() (*audio.IntBuffer, error) {
	data, err := p.Quantize()
	if err != nil {
		return nil, err
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: p.SampleRate},
		Data:           data,
		SourceBitDepth: p.BitDepth,
	}, nil
}

// Generate writes the calibration signal as a mono PCM WAV to ws.
func Generate(p Plan, ws io.WriteSeeker) error {
	buf, err := p.IntBuffer()
	if err != nil {
		return err
	}

	w, err := pcm.NewWriter(ws, pcm.Format{
		Channels:   1,
		Width:      p.BitDepth / bitsPerByte,
		SampleRate: p.SampleRate,
	})
	if err != nil {
		return err
	}
	if err := w.WriteBuffer(buf); err != nil {
		return err
	}
	return w.Close()
}

// GenerateFile writes the calibration signal to path. A partially written
// file is removed on failure.
func GenerateFile(p Plan, path string) (err error) {
	if err := p.Validate(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", pcm.ErrIO, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", pcm.ErrIO, closeErr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return Generate(p, file)
}
