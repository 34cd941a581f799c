package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const bannerMaxWidth = 1280

// ProcessBanner re-encodes an uploaded jpg/png banner as webp, downscaling
// anything wider than bannerMaxWidth. Aspect ratio is preserved.
func ProcessBanner(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	if bounds.Dx() > bannerMaxWidth {
		height := bounds.Dy() * bannerMaxWidth / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, bannerMaxWidth, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var out bytes.Buffer
	if err := webp.Encode(&out, src, &webp.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
