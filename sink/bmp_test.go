package sink

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/framefab/raster"
)

func TestWriteBMPHeaderFields(t *testing.T) {
	img := raster.New(2, 2)
	img.Set(0, 0, 1, 2, 3, 255)

	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := WriteBMP(path, img); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read written bmp: %v", err)
	}
	if len(b) < fileHeaderSize+infoHeaderSize {
		t.Fatalf("file too short: %d bytes", len(b))
	}
	if b[0] != 'B' || b[1] != 'M' {
		t.Fatalf("expected BM magic, got %q", b[:2])
	}
	bitCount := binary.LittleEndian.Uint16(b[28:30])
	if bitCount != 32 {
		t.Fatalf("expected bit count 32, got %d", bitCount)
	}
	height := int32(binary.LittleEndian.Uint32(b[22:26]))
	if height != 2 {
		t.Fatalf("expected positive bottom-up height 2, got %d", height)
	}
}

func TestWriteBMPRejectsInvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := WriteBMP(path, raster.Image{}); err == nil {
		t.Fatalf("expected error for invalid image")
	}
}

func TestWriteBMPBottomUpRowOrder(t *testing.T) {
	img := raster.New(1, 2)
	img.Set(0, 0, 10, 0, 0, 255) // Top row.
	img.Set(0, 1, 20, 0, 0, 255) // Bottom row.

	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := WriteBMP(path, img); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read written bmp: %v", err)
	}
	pixelStart := fileHeaderSize + infoHeaderSize
	// BMP row order is bottom-up, so the first row on disk is y=1 (B=20).
	if b[pixelStart] != 20 {
		t.Fatalf("expected first on-disk row to be the image's bottom row, got B=%d", b[pixelStart])
	}
	if b[pixelStart+4] != 10 {
		t.Fatalf("expected second on-disk row to be the image's top row, got B=%d", b[pixelStart+4])
	}
}
