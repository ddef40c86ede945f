// This package writes raster.Buffer images as baseline TIFF files: a single
// uncompressed strip, 8 bits per sample, in either grayscale or RGB.
package tiff

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/TeamKansas/mazeGenerator/raster"
	xtiff "golang.org/x/image/tiff"
)

// Field types used in directory entries.
const (
	typeShort    = 3
	typeLong     = 4
	typeRational = 5
)

// Directory entry tags.
const (
	tagImageWidth                = 256
	tagImageLength               = 257
	tagBitsPerSample             = 258
	tagCompression               = 259
	tagPhotometricInterpretation = 262
	tagStripOffsets              = 273
	tagSamplesPerPixel           = 277
	tagRowsPerStrip              = 278
	tagStripByteCounts           = 279
	tagXResolution               = 282
	tagYResolution               = 283
	tagResolutionUnit            = 296
)

const (
	headerSize = 8
	entrySize  = 12
	// The size of each of the two trailing resolution values.
	rationalSize = 8
)

// A single 12-byte image file directory entry. Value holds either the value
// itself or the offset of the value in the file.
type entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Value uint32
}

// Returns the directory entries describing b, in ascending tag order. The
// offsets of out-of-line values assume the layout written by Encode.
func directory(b *raster.Buffer) []entry {
	dataLen := uint32(len(b.Pix()))
	rgb := b.Mode() == raster.Truecolor
	count := uint32(11)
	photometric := uint32(1)
	if rgb {
		count = 12
		photometric = 2
	}
	// Out-of-line values follow the entries and the 4-byte next-IFD offset.
	trailer := headerSize + dataLen + 2 + count*entrySize + 4
	bitsPerSample := entry{tagBitsPerSample, typeShort, 1, 8}
	if rgb {
		bitsPerSample = entry{tagBitsPerSample, typeShort, 3,
			trailer + 2*rationalSize}
	}
	toReturn := []entry{
		{tagImageWidth, typeShort, 1, uint32(b.Width())},
		{tagImageLength, typeShort, 1, uint32(b.Height())},
		bitsPerSample,
		{tagCompression, typeShort, 1, 1},
		{tagPhotometricInterpretation, typeShort, 1, photometric},
		{tagStripOffsets, typeLong, 1, headerSize},
	}
	if rgb {
		toReturn = append(toReturn, entry{tagSamplesPerPixel, typeShort, 1, 3})
	}
	toReturn = append(toReturn,
		entry{tagRowsPerStrip, typeShort, 1, uint32(b.Height())},
		entry{tagStripByteCounts, typeLong, 1, dataLen},
		entry{tagXResolution, typeRational, 1, trailer},
		entry{tagYResolution, typeRational, 1, trailer + rationalSize},
		entry{tagResolutionUnit, typeShort, 1, 1},
	)
	return toReturn
}

// Wraps a writer, remembering the first error so that the layout code doesn't
// need to check each write.
type errWriter struct {
	w io.Writer
	e error
}

func (w *errWriter) write(data interface{}) {
	if w.e != nil {
		return
	}
	w.e = binary.Write(w.w, binary.LittleEndian, data)
}

// Writes b to w as a TIFF image.
func Encode(w io.Writer, b *raster.Buffer) error {
	pix := b.Pix()
	entries := directory(b)
	ew := &errWriter{w: w}
	// Header: byte order, magic number, and offset of the directory, which
	// comes right after the pixel data.
	ew.write([2]byte{'I', 'I'})
	ew.write(uint16(42))
	ew.write(uint32(headerSize + len(pix)))
	ew.write(pix)
	ew.write(uint16(len(entries)))
	ew.write(entries)
	// No further directories.
	ew.write(uint32(0))
	// X and Y resolution, both 1/1.
	ew.write([4]uint32{1, 1, 1, 1})
	if b.Mode() == raster.Truecolor {
		ew.write([3]uint16{8, 8, 8})
	}
	if ew.e != nil {
		return fmt.Errorf("Error writing TIFF data: %w", ew.e)
	}
	return nil
}

// Creates or truncates the named file and writes b to it as a TIFF image.
func WriteFile(name string, b *raster.Buffer) error {
	f, e := os.Create(name)
	if e != nil {
		return fmt.Errorf("Error creating %s: %w", name, e)
	}
	w := bufio.NewWriter(f)
	e = Encode(w, b)
	if e == nil {
		e = w.Flush()
	}
	if e != nil {
		f.Close()
		return fmt.Errorf("Error writing %s: %w", name, e)
	}
	e = f.Close()
	if e != nil {
		return fmt.Errorf("Error closing %s: %w", name, e)
	}
	return nil
}

// Decodes the named TIFF file and checks that it has the same size and pixel
// data as b. Used to check files written by WriteFile.
func Verify(name string, b *raster.Buffer) error {
	f, e := os.Open(name)
	if e != nil {
		return fmt.Errorf("Error opening %s: %w", name, e)
	}
	defer f.Close()
	pic, e := xtiff.Decode(f)
	if e != nil {
		return fmt.Errorf("Error decoding %s: %w", name, e)
	}
	if pic.Bounds() != b.Bounds() {
		return fmt.Errorf("%s has bounds %s, expected %s", name, pic.Bounds(),
			b.Bounds())
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			r1, g1, b1, _ := pic.At(x, y).RGBA()
			r2, g2, b2, _ := b.At(x, y).RGBA()
			if (r1 != r2) || (g1 != g2) || (b1 != b2) {
				return fmt.Errorf("%s differs from the image at (%d, %d)",
					name, x, y)
			}
		}
	}
	return nil
}
