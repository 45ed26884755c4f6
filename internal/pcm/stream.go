package pcm

import (
	"fmt"
	"io"
	"slices"
)

// ProgressFunc receives the decoded percentage in [0, 100].
type ProgressFunc func(percent float64)

// DecodeStream decodes f.Frames frames from r in chunks of ChunkFrames,
// calling progress after each chunk. The result is identical to Decode on the
// same payload. For an empty stream progress is called once with 100.
// progress may be nil. The output grows as frames arrive, so a header that
// overstates the payload fails with ErrIO without a matching allocation.
func DecodeStream(r io.Reader, f Format, progress ProgressFunc) ([]float64, error) {
	if _, err := decoderFor(f.Width); err != nil {
		return nil, err
	}
	if f.Channels < 1 {
		return nil, fmt.Errorf("%w: channel count %d", ErrMalformed, f.Channels)
	}
	if f.Frames < 0 {
		return nil, fmt.Errorf("%w: frame count %d", ErrMalformed, f.Frames)
	}
	if progress == nil {
		progress = func(float64) {}
	}

	out := make([]float64, 0, min(f.Frames, ChunkFrames))
	if f.Frames == 0 {
		progress(percentComplete)
		return out, nil
	}

	frameSize := f.FrameSize()
	chunk := make([]byte, ChunkFrames*frameSize)

	for done := 0; done < f.Frames; {
		n := min(ChunkFrames, f.Frames-done)
		buf := chunk[:n*frameSize]
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: reading frames %d-%d: %w", ErrIO, done, done+n, err)
		}
		out = slices.Grow(out, n)[:done+n]
		if err := decodeInto(out[done:], buf, f); err != nil {
			return nil, err
		}
		done += n
		progress(float64(done) / float64(f.Frames) * percentComplete)
	}

	return out, nil
}
