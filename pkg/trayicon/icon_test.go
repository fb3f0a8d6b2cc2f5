package trayicon

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRGBA(t *testing.T) {
	rgba := make([]byte, 2*3*4)
	rgba[0] = 0xaa
	icon, err := FromRGBA(rgba, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), icon.Width())
	assert.Equal(t, uint32(3), icon.Height())
	assert.Equal(t, rgba, icon.RGBA())

	// the icon owns its pixels
	rgba[0] = 0
	assert.Equal(t, byte(0xaa), icon.RGBA()[0])
	icon.RGBA()[0] = 1
	assert.Equal(t, byte(0xaa), icon.RGBA()[0])
}

func TestFromRGBAEmpty(t *testing.T) {
	icon, err := FromRGBA(nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, icon.RGBA())
}

func TestFromRGBAInvalid(t *testing.T) {
	for _, tc := range []struct {
		name   string
		bytes  int
		w, h   uint32
		kind   BadIconKind
		errMsg string
	}{
		{"not divisible by 4", 7, 1, 1, ByteCountNotDivisibleBy4, "(7) isn't divisible by 4"},
		{"too few pixels", 4, 2, 2, DimensionsVsPixelCount, "expected pixel count is 4"},
		{"too many pixels", 16 * 4, 2, 2, DimensionsVsPixelCount, "(2x2)"},
		{"pixels for empty size", 4, 0, 0, DimensionsVsPixelCount, "(0x0)"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var icon *Icon
			var err error
			assert.NotPanics(t, func() {
				icon, err = FromRGBA(make([]byte, tc.bytes), tc.w, tc.h)
			})
			require.Error(t, err)
			assert.Nil(t, icon)

			var bad *BadIconError
			require.True(t, errors.As(err, &bad))
			assert.Equal(t, tc.kind, bad.Kind)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.Set(5, 5, color.RGBA{R: 255, A: 255})
	img.Set(6, 5, color.RGBA{G: 255, A: 255})

	icon, err := FromImage(img)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), icon.Width())
	assert.Equal(t, uint32(1), icon.Height())
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 255, 0, 255}, icon.RGBA())
}

func TestFromImageSubImage(t *testing.T) {
	full := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	full.SetNRGBA(3, 1, color.NRGBA{B: 255, A: 255})
	full.SetNRGBA(0, 2, color.NRGBA{R: 255, A: 255})

	icon, err := FromImage(full.SubImage(image.Rect(0, 0, 4, 2)))
	require.NoError(t, err)
	assert.Equal(t, uint32(4), icon.Width())
	assert.Equal(t, uint32(2), icon.Height())
	rgba := icon.RGBA()
	require.Len(t, rgba, 4*2*4)
	assert.Equal(t, []byte{0, 0, 255, 255}, rgba[len(rgba)-4:])

	icon, err = FromImage(full.SubImage(image.Rect(0, 2, 2, 4)))
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255}, icon.RGBA()[:4])
}
