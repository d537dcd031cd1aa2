// Package vision implements the frame preprocessing applied before text
// recognition: grayscale conversion, min-max normalization, and binary
// thresholding. All three steps are pure functions of their inputs so a
// fixed (frame, threshold) pair always yields the same preprocessed image.
package vision

import (
	"image"
	"image/color"
)

// Grayscale converts src to an 8-bit grayscale image using the standard
// luminance weights of color.GrayModel
func Grayscale(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return copyGray(g)
	}
	b := src.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return out
}

// Normalize stretches the intensity range of g to the full 0..255 interval.
// A flat image (min == max) is returned as an unchanged copy since there is
// no contrast to stretch
func Normalize(g *image.Gray) *image.Gray {
	b := g.Bounds()
	if b.Empty() {
		return image.NewGray(b)
	}

	lo, hi := uint8(255), uint8(0)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for _, p := range row(g, y) {
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
	}
	if lo == hi {
		return copyGray(g)
	}

	out := image.NewGray(b)
	span := int(hi) - int(lo)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src, dst := row(g, y), row(out, y)
		for i, p := range src {
			dst[i] = uint8((int(p) - int(lo)) * 255 / span)
		}
	}
	return out
}

// Threshold binarizes g: pixels strictly above t become white, the rest
// black. t is clamped to 0..255
func Threshold(g *image.Gray, t int) *image.Gray {
	if t < 0 {
		t = 0
	}
	if t > 255 {
		t = 255
	}
	b := g.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src, dst := row(g, y), row(out, y)
		for i, p := range src {
			if int(p) > t {
				dst[i] = 255
			}
		}
	}
	return out
}

// Preprocess runs the full chain: grayscale, normalize, threshold at t
func Preprocess(src image.Image, t int) *image.Gray {
	return Threshold(Normalize(Grayscale(src)), t)
}

// row returns the pixel slice for scanline y inside g's bounds, respecting
// the stride so sub-images read the right bytes
func row(g *image.Gray, y int) []uint8 {
	b := g.Bounds()
	off := g.PixOffset(b.Min.X, y)
	return g.Pix[off : off+b.Dx()]
}

// copyGray duplicates g into a freshly allocated image row by row
func copyGray(g *image.Gray) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		copy(row(out, y), row(g, y))
	}
	return out
}
