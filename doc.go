// Package shaperlut measures the transfer curve of an unknown audio
// waveshaper and exports it as a lookup table for interpolated playback.
//
// # Workflow
//
// A measurement has four stages:
//
//  1. Generate a stepped calibration WAV: StepCount evenly spaced levels
//     from -1 to 1, each held for 1024 samples at 48 kHz, framed by one pad
//     block on either side.
//  2. Process the calibration file externally (plugin, hardware, tape
//     machine) and record the result as a WAV file.
//  3. Load both files and analyze them. The mean of each step block in the
//     calibration and measured recordings gives one point of the transfer
//     curve.
//  4. Export the normalized output curve as C source, or compare it against
//     a reference expression.
//
// # Quick Start
//
//	config := shaperlut.DefaultConfig()
//	if err := shaperlut.GenerateCalibration("calibration.wav", config); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... process calibration.wav into measured.wav ...
//
//	res, table, err := shaperlut.Measure("calibration.wav", "measured.wav", config, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d steps, rms deviation from identity %.4f\n", res.Steps(), res.Summary.RMSError)
//	if err := shaperlut.ExportTable(os.Stdout, table); err != nil {
//	    log.Fatal(err)
//	}
//
// For finer control, such as progress reporting or reference comparisons,
// drive a [Session] directly.
//
// # Input Formats
//
// Recordings must be integer PCM WAV files with 8, 16, 24 or 32 bits per
// sample. Only the first channel is analyzed. Samples are decoded to float
// by dividing by the positive full scale of their width (127, 32767,
// 8388607, 2147483647) without clamping.
//
// # Normalization
//
// The calibration curve is mapped affinely onto [-1, 1]; it spans the full
// range by construction. The measured curve is divided by its peak
// magnitude, preserving sign and zero crossings, so it peaks at exactly 1 but
// need not reach -1.
//
// # Sample Rates
//
// Analysis is positional, so the measured recording must share the
// calibration sample rate. [Config.RateMismatch] selects what happens when
// it does not: fail (the default), warn and proceed, or resample the
// measured recording to the calibration rate.
//
// # Exported Table
//
// The exported source declares <name>_table_size, <name>_LUT_scale
// ((size-1)/2) and <name>_table. A player evaluates input x with
//
//	pos   = (x + 1) * scale
//	index = floor(pos), clamped to [0, size-2]
//	frac  = pos - index
//	y     = table[index]*(1-frac) + table[index+1]*frac
//
// [Table.Eval] implements the same formula.
package shaperlut
