package pcm

import (
	"encoding/binary"
)

// sampleDecoder reads one little-endian signed sample from b.
type sampleDecoder func(b []byte) int32

func decodeInt8(b []byte) int32 {
	return int32(int8(b[0]))
}

func decodeInt16(b []byte) int32 {
	return int32(int16(binary.LittleEndian.Uint16(b)))
}

// decodeInt24 reconstructs a packed 24-bit sample and sign-extends it.
func decodeInt24(b []byte) int32 {
	v := int32(b[2])<<bitShift16 | int32(b[1])<<bitShift8 | int32(b[0])
	if v&signBit24 != 0 {
		v -= signExtend24
	}
	return v
}

func decodeInt32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

func decoderFor(width int) (sampleDecoder, error) {
	switch width {
	case width8:
		return decodeInt8, nil
	case width16:
		return decodeInt16, nil
	case width24:
		return decodeInt24, nil
	case width32:
		return decodeInt32, nil
	default:
		_, err := fullScale(width)
		return nil, err
	}
}

// Decode converts an interleaved PCM payload into normalized samples of the
// first channel. Values are divided by the width's full-scale divisor and are
// not clamped, so the most negative integer maps slightly below -1.0.
func Decode(payload []byte, f Format) ([]float64, error) {
	if err := f.Validate(len(payload)); err != nil {
		return nil, err
	}
	frames := len(payload) / f.FrameSize()
	out := make([]float64, frames)
	if err := decodeInto(out, payload, f); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeInto fills dst with len(dst) first-channel samples taken from payload.
func decodeInto(dst []float64, payload []byte, f Format) error {
	dec, err := decoderFor(f.Width)
	if err != nil {
		return err
	}
	scale, err := fullScale(f.Width)
	if err != nil {
		return err
	}
	stride := f.FrameSize()

	// Fast path for mono 16-bit, the most common measured format
	if f.Channels == 1 && f.Width == width16 {
		for i := range dst {
			dst[i] = float64(decodeInt16(payload[i*width16:])) / scale
		}
		return nil
	}

	for i := range dst {
		dst[i] = float64(dec(payload[i*stride:])) / scale
	}
	return nil
}
