package lut

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tphakala/go-shaper-lut/internal/pcm"
)

// valuesPerRow is the number of table entries per source line.
const valuesPerRow = 8

const headerTemplate = `/*
 * %[1]s: waveshaper transfer curve lookup table
 *
 * %[2]d entries sampled on a uniform input axis over [-1, 1]; entry i holds
 * the output for input -1 + 2*i/(%[1]s_table_size - 1).
 *
 * Linear interpolation for an input x in [-1, 1]:
 *
 *   float pos   = (x + 1.0f) * %[1]s_LUT_scale;
 *   int   index = (int)floorf(pos);
 *   float frac  = pos - index;
 *   float y     = %[1]s_table[index] * (1.0f - frac)
 *               + %[1]s_table[index + 1] * frac;
 *
 * Clamp index to [0, %[1]s_table_size - 2] so that x = 1 reads the end of
 * the last segment.
 */

`

// Export writes t as C source: a documentation header, the table size, the
// precomputed scale (size-1)/2 and the values to 6 decimal places, 8 per row.
func Export(w io.Writer, t *Table) error {
	if t == nil || t.Size() < minTableSize {
		return fmt.Errorf("%w: table has fewer than %d entries", ErrInvalidExport, minTableSize)
	}

	bw := bufio.NewWriter(w)
	n := t.Size()

	fmt.Fprintf(bw, headerTemplate, t.Name, n)
	fmt.Fprintf(bw, "const int %s_table_size = %d;\n", t.Name, n)
	fmt.Fprintf(bw, "const float %s_LUT_scale = %.1ff; /* (%d - 1) / 2.0 */\n\n", t.Name, t.Scale(), n)
	fmt.Fprintf(bw, "const float %s_table[%d] = {\n", t.Name, n)

	row := make([]string, 0, valuesPerRow)
	for start := 0; start < n; start += valuesPerRow {
		row = row[:0]
		for _, v := range t.Values[start:min(start+valuesPerRow, n)] {
			row = append(row, fmt.Sprintf("%.6ff", v))
		}
		sep := ","
		if start+valuesPerRow >= n {
			sep = ""
		}
		fmt.Fprintf(bw, "    %s%s\n", strings.Join(row, ", "), sep)
	}
	fmt.Fprint(bw, "};\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: writing LUT: %w", pcm.ErrIO, err)
	}
	return nil
}

// String returns the exported source text, or "" for a table Export rejects.
// Callers that need the error should use Export.
func (t *Table) String() string {
	var sb strings.Builder
	if err := Export(&sb, t); err != nil {
		return ""
	}
	return sb.String()
}

// WriteFile exports t to path, replacing any existing file.
func WriteFile(path string, t *Table) (err error) {
	if t == nil || t.Size() < minTableSize {
		return fmt.Errorf("%w: table has fewer than %d entries", ErrInvalidExport, minTableSize)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", pcm.ErrIO, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", pcm.ErrIO, closeErr)
		}
	}()

	return Export(file, t)
}
