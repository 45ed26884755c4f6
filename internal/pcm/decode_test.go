package pcm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_ZeroFramesAllWidths(t *testing.T) {
	const frames = 64
	for _, width := range []int{1, 2, 3, 4} {
		t.Run(widthName(width), func(t *testing.T) {
			f := Format{Channels: 1, Width: width, SampleRate: 48000}
			samples, err := Decode(make([]byte, frames*width), f)
			require.NoError(t, err)
			require.Len(t, samples, frames)
			for i, s := range samples {
				assert.Zero(t, s, "sample %d", i)
			}
		})
	}
}

func TestDecode_24BitSignExtension(t *testing.T) {
	payload := []byte{
		0xFF, 0xFF, 0xFF, // -1
		0xFF, 0xFF, 0x7F, // 0x7FFFFF
		0x00, 0x00, 0x80, // -0x800000
		0x01, 0x00, 0x00, // 1
	}
	samples, err := Decode(payload, Format{Channels: 1, Width: 3})
	require.NoError(t, err)
	require.Len(t, samples, 4)

	assert.InDelta(t, -1.0/8388607.0, samples[0], 1e-15)
	assert.InDelta(t, 0.99999988, samples[1], 1e-6)
	assert.Equal(t, 1.0, samples[1])
	assert.Equal(t, -8388608.0/8388607.0, samples[2])
	assert.Equal(t, 1.0/8388607.0, samples[3])
}

func TestDecode_FullScalePerWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		positive []byte
		negative []byte
		negWant  float64
	}{
		{"8-bit", 1, []byte{0x7F}, []byte{0x80}, -128.0 / 127.0},
		{"16-bit", 2, []byte{0xFF, 0x7F}, []byte{0x00, 0x80}, -32768.0 / 32767.0},
		{"24-bit", 3, []byte{0xFF, 0xFF, 0x7F}, []byte{0x00, 0x00, 0x80}, -8388608.0 / 8388607.0},
		{"32-bit", 4, []byte{0xFF, 0xFF, 0xFF, 0x7F}, []byte{0x00, 0x00, 0x00, 0x80}, -2147483648.0 / 2147483647.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := append(append([]byte{}, tt.positive...), tt.negative...)
			samples, err := Decode(payload, Format{Channels: 1, Width: tt.width})
			require.NoError(t, err)
			require.Len(t, samples, 2)
			assert.Equal(t, 1.0, samples[0])
			// Not clamped after decode
			assert.Equal(t, tt.negWant, samples[1])
			assert.Less(t, samples[1], -1.0)
		})
	}
}

func TestDecode_KeepsFirstChannelOnly(t *testing.T) {
	// 16-bit stereo: left = 1000, -1000; right = 32767, 32767
	payload := []byte{
		0xE8, 0x03, 0xFF, 0x7F,
		0x18, 0xFC, 0xFF, 0x7F,
	}
	samples, err := Decode(payload, Format{Channels: 2, Width: 2})
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 1000.0/32767.0, samples[0])
	assert.Equal(t, -1000.0/32767.0, samples[1])
}

func TestDecode_MultiChannel24Bit(t *testing.T) {
	// Three channels, two frames; only channel 0 survives.
	payload := []byte{
		0x01, 0x00, 0x00, 0xAA, 0xAA, 0xAA, 0x55, 0x55, 0x55,
		0xFE, 0xFF, 0xFF, 0xAA, 0xAA, 0xAA, 0x55, 0x55, 0x55,
	}
	samples, err := Decode(payload, Format{Channels: 3, Width: 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0 / 8388607.0, -2.0 / 8388607.0}, samples)
}

func TestDecode_UnsupportedWidth(t *testing.T) {
	for _, width := range []int{0, 5, 8} {
		_, err := Decode(make([]byte, 16), Format{Channels: 1, Width: width})
		require.ErrorIs(t, err, ErrUnsupportedFormat, "width %d", width)
	}
}

func TestDecode_PayloadNotFrameAligned(t *testing.T) {
	_, err := Decode(make([]byte, 7), Format{Channels: 2, Width: 2})
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecode_InvalidChannelCount(t *testing.T) {
	_, err := Decode(nil, Format{Channels: 0, Width: 2})
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecode_EmptyPayload(t *testing.T) {
	samples, err := Decode(nil, Format{Channels: 2, Width: 3})
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestFormat_Helpers(t *testing.T) {
	f := Format{Channels: 2, Width: 3, SampleRate: 44100}
	assert.Equal(t, 6, f.FrameSize())
	assert.Equal(t, 24, f.BitDepth())

	af := f.AudioFormat()
	assert.Equal(t, 2, af.NumChannels)
	assert.Equal(t, 44100, af.SampleRate)
}

func TestBuffer_Duration(t *testing.T) {
	b := &Buffer{Samples: make([]float64, 24000), SampleRate: 48000}
	assert.Equal(t, 24000, b.Len())
	assert.Equal(t, "500ms", b.Duration().String())

	empty := &Buffer{}
	assert.Zero(t, empty.Duration())
}

func BenchmarkDecode_24BitStereo(b *testing.B) {
	f := Format{Channels: 2, Width: 3, SampleRate: 48000}
	payload := make([]byte, 48000*f.FrameSize())
	for i := range payload {
		payload[i] = byte(i * 31)
	}
	b.SetBytes(int64(len(payload)))
	for b.Loop() {
		if _, err := Decode(payload, f); err != nil {
			b.Fatal(err)
		}
	}
}

func widthName(width int) string {
	return [...]string{"", "8-bit", "16-bit", "24-bit", "32-bit"}[width]
}
