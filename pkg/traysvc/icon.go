package traysvc

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"

	"github.com/spf13/afero"

	"github.com/manifold/trayicon/pkg/trayicon"
)

// LoadIcon decodes the PNG at path. An empty path yields DefaultIcon.
func LoadIcon(fs afero.Fs, path string) (*trayicon.Icon, error) {
	if path == "" {
		return DefaultIcon(), nil
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	return trayicon.FromImage(img)
}

// DefaultIcon is a 16x16 filled disc.
func DefaultIcon() *trayicon.Icon {
	const size = 16
	fill := color.NRGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := 2*x-size+1, 2*y-size+1
			if dx*dx+dy*dy <= size*size {
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	icon, err := trayicon.FromRGBA(img.Pix, size, size)
	if err != nil {
		panic(err)
	}
	return icon
}
