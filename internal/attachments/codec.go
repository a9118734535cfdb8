package attachments

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth    = 1024
	DefaultMaxHeight   = 1024
	DefaultJPEGQuality = 85

	// OutputContentType is the only format the codec produces.
	OutputContentType = "image/jpeg"
	OutputExtension   = "jpg"

	// Decoding anything larger would allocate hundreds of MB before resizing.
	maxSourcePixels = 50_000_000
)

// Codec decodes an uploaded image, flattens transparency onto white,
// shrinks it to fit a bounding box and re-encodes it as JPEG.
type Codec struct {
	quality int
}

func NewCodec(quality int) *Codec {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Codec{quality: quality}
}

// Normalize never upscales. Non-positive bounds leave the dimensions as is.
func (c *Codec) Normalize(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width*cfg.Height > maxSourcePixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds pixel limit", ErrDecode, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	out := image.Image(flatten(img))
	if maxWidth > 0 && maxHeight > 0 {
		out = imaging.Fit(out, maxWidth, maxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrDecode, err)
	}
	return buf.Bytes(), nil
}

// flatten composites img over an opaque white canvas of the same size.
func flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
