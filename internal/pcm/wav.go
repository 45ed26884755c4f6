package pcm

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Read parses a WAV container from rs and decodes its first channel.
// progress may be nil.
func Read(rs io.ReadSeeker, progress ProgressFunc) (*Buffer, Format, error) {
	f, d, err := readHeader(rs)
	if err != nil {
		return nil, Format{}, err
	}

	samples, err := DecodeStream(d.PCMChunk, f, progress)
	if err != nil {
		return nil, Format{}, err
	}

	return &Buffer{Samples: samples, SampleRate: f.SampleRate}, f, nil
}

// ReadFile opens path and decodes it with Read. The file is closed before
// ReadFile returns.
func ReadFile(path string, progress ProgressFunc) (*Buffer, Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Format{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() { _ = file.Close() }()

	return Read(file, progress)
}

// Probe reads only the header of a WAV container.
func Probe(rs io.ReadSeeker) (Format, error) {
	f, _, err := readHeader(rs)
	return f, err
}

// readHeader validates the container and leaves the decoder positioned at
// the start of the PCM payload.
func readHeader(rs io.ReadSeeker) (Format, *wav.Decoder, error) {
	d := wav.NewDecoder(rs)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return Format{}, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if d.NumChans < 1 {
		return Format{}, nil, fmt.Errorf("%w: missing fmt chunk", ErrMalformed)
	}

	switch d.WavAudioFormat {
	case wavFormatPCM, wavFormatExtensible:
	default:
		return Format{}, nil, fmt.Errorf("%w: WAV audio format %d is not integer PCM",
			ErrUnsupportedFormat, d.WavAudioFormat)
	}
	if d.BitDepth%bitsPerByte != 0 {
		return Format{}, nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, d.BitDepth)
	}

	f := Format{
		Channels:   int(d.NumChans),
		Width:      int(d.BitDepth) / bitsPerByte,
		SampleRate: int(d.SampleRate),
	}
	if _, err := fullScale(f.Width); err != nil {
		return Format{}, nil, err
	}

	if err := d.FwdToPCM(); err != nil {
		return Format{}, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if d.PCMChunk == nil {
		return Format{}, nil, fmt.Errorf("%w: missing data chunk", ErrMalformed)
	}

	size, err := dataChunkSize(rs)
	if err != nil {
		return Format{}, nil, err
	}
	if size%f.FrameSize() != 0 {
		return Format{}, nil, fmt.Errorf("%w: data chunk of %d bytes is not a multiple of the %d-byte frame",
			ErrMalformed, size, f.FrameSize())
	}
	f.Frames = size / f.FrameSize()

	return f, d, nil
}

// dataChunkSize re-reads the size field of the data chunk header that rs has
// just been advanced past. wav.Decoder rounds odd sizes up to the RIFF word
// boundary, which would turn a padding byte into a sample.
func dataChunkSize(rs io.ReadSeeker) (int, error) {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if start < uint32Size {
		return 0, fmt.Errorf("%w: data chunk header truncated", ErrMalformed)
	}
	if _, err := rs.Seek(start-uint32Size, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	var raw [uint32Size]byte
	if _, err := io.ReadFull(rs, raw[:]); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return int(binary.LittleEndian.Uint32(raw[:])), nil
}

// AudioFormat converts f to the go-audio format descriptor.
func (f Format) AudioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: f.Channels,
		SampleRate:  f.SampleRate,
	}
}
