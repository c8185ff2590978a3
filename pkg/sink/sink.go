package sink

import (
	"bufio"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/matzehuels/curveplot/pkg/errors"
)

// Source is a row-major RGB raster, three bytes per pixel, row 0 at the
// bottom. *canvas.Canvas implements it.
type Source interface {
	Width() int
	Height() int
	Pix() []uint8
}

// Image returns an opaque RGBA copy of src with the top row holding the
// maximum y.
func Image(src Source) *image.RGBA {
	w, h := src.Width(), src.Height()
	pix := src.Pix()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := pix[(h-1-y)*w*3 : (h-y)*w*3]
		out := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			out[x*4] = row[x*3]
			out[x*4+1] = row[x*3+1]
			out[x*4+2] = row[x*3+2]
			out[x*4+3] = 0xff
		}
	}
	return img
}

// Resize scales img to w×h with Catmull-Rom resampling. It returns img
// unchanged (as RGBA) when the size already matches.
func Resize(img image.Image, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Config("resolution must be positive, got %dx%d", w, h)
	}
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Dx() == w && b.Dy() == h {
		return rgba, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if b.Dx() == w && b.Dy() == h {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst, nil
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

// EncodePNG writes src as a PNG image.
func EncodePNG(w io.Writer, src Source) error {
	return WritePNG(w, Image(src))
}

// WritePNG encodes an already flipped image.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// EncodeRGB writes the raw 24-bit pixels of src, top row first, with no
// header.
func EncodeRGB(w io.Writer, src Source) error {
	width, h := src.Width(), src.Height()
	pix := src.Pix()
	bw := bufio.NewWriter(w)
	for y := h - 1; y >= 0; y-- {
		if _, err := bw.Write(pix[y*width*3 : (y+1)*width*3]); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write rgb")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write rgb")
	}
	return nil
}

// rgbaSource adapts a top-down image to the bottom-up Source layout.
type rgbaSource struct {
	w, h int
	pix  []uint8
}

func (s *rgbaSource) Width() int   { return s.w }
func (s *rgbaSource) Height() int  { return s.h }
func (s *rgbaSource) Pix() []uint8 { return s.pix }

// FromImage converts an image with the maximum y in its top row back into
// a Source, so that frames read from PNG can go through every sink.
func FromImage(img image.Image) Source {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]uint8, w*h*3)
	for y := 0; y < h; y++ {
		row := (h - 1 - y) * w * 3
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := row + x*3
			pix[i], pix[i+1], pix[i+2] = uint8(r>>8), uint8(g>>8), uint8(bl>>8)
		}
	}
	return &rgbaSource{w: w, h: h, pix: pix}
}
