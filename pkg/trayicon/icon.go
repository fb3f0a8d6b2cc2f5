package trayicon

import (
	"fmt"
	"image"
	"image/draw"
)

// BadIconKind tells why icon data was rejected.
type BadIconKind int

const (
	// ByteCountNotDivisibleBy4 means the buffer does not hold whole RGBA pixels.
	ByteCountNotDivisibleBy4 BadIconKind = iota
	// DimensionsVsPixelCount means width*height disagrees with the pixel count.
	DimensionsVsPixelCount
)

// BadIconError is returned when icon data is invalid.
type BadIconError struct {
	Kind       BadIconKind
	ByteCount  int
	Width      uint32
	Height     uint32
	PixelCount int
}

func (e *BadIconError) Error() string {
	switch e.Kind {
	case ByteCountNotDivisibleBy4:
		return fmt.Sprintf("the length of the rgba argument (%d) isn't divisible by 4, making it impossible to interpret as 32bpp RGBA pixels", e.ByteCount)
	case DimensionsVsPixelCount:
		return fmt.Sprintf("the specified dimensions (%dx%d) don't match the number of pixels supplied by the rgba argument (%d); for those dimensions, the expected pixel count is %d",
			e.Width, e.Height, e.PixelCount, uint64(e.Width)*uint64(e.Height))
	default:
		return "bad icon"
	}
}

// Icon is an immutable 32bpp RGBA bitmap.
type Icon struct {
	rgba   []byte
	width  uint32
	height uint32
}

// FromRGBA validates and copies rgba into a new Icon. rgba must hold exactly
// width*height pixels of 4 bytes each.
func FromRGBA(rgba []byte, width, height uint32) (*Icon, error) {
	if len(rgba)%4 != 0 {
		return nil, &BadIconError{Kind: ByteCountNotDivisibleBy4, ByteCount: len(rgba)}
	}
	pixels := len(rgba) / 4
	if uint64(pixels) != uint64(width)*uint64(height) {
		return nil, &BadIconError{
			Kind:       DimensionsVsPixelCount,
			Width:      width,
			Height:     height,
			PixelCount: pixels,
		}
	}
	buf := make([]byte, len(rgba))
	copy(buf, rgba)
	return &Icon{rgba: buf, width: width, height: height}, nil
}

// FromImage converts an already decoded image into an Icon.
func FromImage(img image.Image) (*Icon, error) {
	b := img.Bounds()
	rgba, ok := img.(*image.NRGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != 4*b.Dx() {
		rgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}
	// sub-images share the parent buffer past their last row
	return FromRGBA(rgba.Pix[:4*b.Dx()*b.Dy()], uint32(b.Dx()), uint32(b.Dy()))
}

// Width returns the icon width in pixels.
func (i *Icon) Width() uint32 { return i.width }

// Height returns the icon height in pixels.
func (i *Icon) Height() uint32 { return i.height }

// RGBA returns a copy of the pixel buffer.
func (i *Icon) RGBA() []byte {
	buf := make([]byte, len(i.rgba))
	copy(buf, i.rgba)
	return buf
}
