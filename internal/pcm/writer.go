package pcm

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/audio"
)

// Writer writes integer samples into a canonical 44-byte-header PCM WAV
// container. Sizes in the header are patched on Close, so the destination
// must be seekable.
type Writer struct {
	w        *bufio.Writer
	ws       io.WriteSeeker
	format   Format
	dataSize uint32
	byteBuf  []byte // Reused encoding buffer
	closed   bool
}

// NewWriter writes a header with placeholder sizes and returns a Writer.
// f.Frames is ignored.
func NewWriter(ws io.WriteSeeker, f Format) (*Writer, error) {
	if _, err := fullScale(f.Width); err != nil {
		return nil, err
	}
	if f.Channels < 1 {
		return nil, fmt.Errorf("%w: channel count %d", ErrMalformed, f.Channels)
	}
	if f.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrMalformed, f.SampleRate)
	}

	w := &Writer{
		w:      bufio.NewWriterSize(ws, wavWriterBufferSize),
		ws:     ws,
		format: f,
	}
	if err := w.writeHeader(); err != nil {
		return nil, fmt.Errorf("%w: writing header: %w", ErrIO, err)
	}
	return w, nil
}

func (w *Writer) writeHeader() error {
	blockAlign := w.format.FrameSize()
	byteRate := w.format.SampleRate * blockAlign

	header := make([]byte, wavHeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0) // Patched on Close
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.format.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.format.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(w.format.BitDepth()))

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0) // Patched on Close

	_, err := w.w.Write(header)
	return err
}

// WriteSamples encodes interleaved integer samples at the writer's width.
// Values must already fit the width; they are truncated to it otherwise.
func (w *Writer) WriteSamples(samples []int) error {
	width := w.format.Width
	needed := len(samples) * width
	if len(w.byteBuf) < needed {
		w.byteBuf = make([]byte, needed)
	}
	buf := w.byteBuf[:needed]

	switch width {
	case width8:
		for i, s := range samples {
			buf[i] = byte(int8(s))
		}
	case width16:
		for i, s := range samples {
			binary.LittleEndian.PutUint16(buf[i*width16:], uint16(int16(s)))
		}
	case width24:
		for i, s := range samples {
			buf[i*width24] = byte(s)
			buf[i*width24+1] = byte(s >> bitShift8)
			buf[i*width24+2] = byte(s >> bitShift16)
		}
	case width32:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(buf[i*width32:], uint32(int32(s)))
		}
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// WriteBuffer writes the samples of a go-audio integer buffer. The buffer's
// channel count must match the writer's.
func (w *Writer) WriteBuffer(buf *audio.IntBuffer) error {
	if buf == nil {
		return nil
	}
	if buf.Format != nil && buf.Format.NumChannels != w.format.Channels {
		return fmt.Errorf("%w: buffer has %d channels, writer %d",
			ErrMalformed, buf.Format.NumChannels, w.format.Channels)
	}
	return w.WriteSamples(buf.Data)
}

// Close flushes buffered data, pads the data chunk to an even length and
// patches the header sizes. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	padding := w.dataSize % 2
	if padding == 1 {
		if err := w.w.WriteByte(0); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	sizeBytes := make([]byte, uint32Size)

	binary.LittleEndian.PutUint32(sizeBytes, wavRiffHeaderSize+w.dataSize+padding)
	if err := w.patch(wavFileSizeOffset, sizeBytes); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(sizeBytes, w.dataSize)
	if err := w.patch(wavDataSizeOffset, sizeBytes); err != nil {
		return err
	}

	if _, err := w.ws.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (w *Writer) patch(offset int64, b []byte) error {
	if _, err := w.ws.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if _, err := w.ws.Write(b); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// FramesWritten returns the number of complete frames written so far.
func (w *Writer) FramesWritten() int {
	return int(w.dataSize) / w.format.FrameSize()
}
