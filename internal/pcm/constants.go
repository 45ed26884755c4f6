package pcm

// Sample widths in bytes
const (
	width8  = 1
	width16 = 2
	width24 = 3
	width32 = 4
)

// Full-scale divisors used to map integer samples onto [-1.0, 1.0]
const (
	fullScale8  = 127.0
	fullScale16 = 32767.0
	fullScale24 = 8388607.0
	fullScale32 = 2147483647.0
)

// 24-bit packing
const (
	bitShift8    = 8
	bitShift16   = 16
	signBit24    = 0x800000
	signExtend24 = 0x1000000
)

// Streaming decode parameters
const (
	// ChunkFrames is the number of frames decoded per progress step.
	ChunkFrames = 1024

	percentComplete = 100.0
)

// WAV container constants
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
	bitsPerByte         = 8

	wavHeaderSize      = 44 // Canonical header size in bytes
	wavRiffHeaderSize  = 36 // RIFF size = riffHeaderSize + dataSize
	wavPCMSubchunkSize = 16 // fmt subchunk size for PCM
	wavFileSizeOffset  = 4  // Offset of the RIFF size field
	wavDataSizeOffset  = 40 // Offset of the data size field
	uint32Size         = 4

	wavWriterBufferSize = 256 * 1024
)
