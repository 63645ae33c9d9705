// Package raster provides grayscale raster operations used by the frame
// sampler's text-likelihood filter and the OCR preprocessing chain. All
// kernels are fixed size; nothing here is tunable at runtime.
package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// Grayscale converts any image to 8-bit grayscale.
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// Binarize thresholds a grayscale image: pixels above threshold become white,
// the rest black.
func Binarize(g *image.Gray, threshold uint8) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(b)
	for i, v := range g.Pix {
		if v > threshold {
			out.Pix[i] = 255
		}
	}
	return out
}

// gauss5 is the binomial approximation of a 5-tap Gaussian kernel.
var gauss5 = [5]uint32{1, 4, 6, 4, 1} // sum 16

// GaussianBlur5 applies a separable 5x5 Gaussian blur. Edges are handled by
// clamping sample coordinates to the image bounds.
func GaussianBlur5(g *image.Gray) *image.Gray {
	return separableBlur(g, gauss5[:], 16)
}

// gauss11 is the binomial approximation of an 11-tap Gaussian kernel.
var gauss11 = [11]uint32{1, 10, 45, 120, 210, 252, 210, 120, 45, 10, 1} // sum 1024

// AdaptiveThreshold binarizes against a local Gaussian-weighted mean over an
// 11x11 neighborhood, offset by c. Robust to uneven lighting, which is the
// usual failure mode for OCR on video frames.
func AdaptiveThreshold(g *image.Gray, c int) *image.Gray {
	mean := separableBlur(g, gauss11[:], 1024)

	b := g.Bounds()
	out := image.NewGray(b)
	for i := range g.Pix {
		if int(g.Pix[i]) > int(mean.Pix[i])-c {
			out.Pix[i] = 255
		}
	}
	return out
}

// separableBlur runs a horizontal then vertical pass of the given kernel.
func separableBlur(g *image.Gray, kernel []uint32, kernelSum uint32) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	radius := len(kernel) / 2

	tmp := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc uint32
			for k, weight := range kernel {
				sx := clamp(x+k-radius, 0, w-1)
				acc += weight * uint32(g.GrayAt(b.Min.X+sx, b.Min.Y+y).Y)
			}
			tmp.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: uint8(acc / kernelSum)})
		}
	}

	out := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc uint32
			for k, weight := range kernel {
				sy := clamp(y+k-radius, 0, h-1)
				acc += weight * uint32(tmp.GrayAt(b.Min.X+x, b.Min.Y+sy).Y)
			}
			out.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: uint8(acc / kernelSum)})
		}
	}
	return out
}

// MorphClose2 performs a morphological close (dilate then erode) with a 2x2
// structuring element, filling single-pixel gaps inside glyph strokes.
func MorphClose2(g *image.Gray) *image.Gray {
	return morph2(morph2(g, true), false)
}

func morph2(g *image.Gray, dilate bool) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	// The erosion walks the reflected element so that dilate+erode compose
	// into a proper close.
	lo, hi := 0, 1
	if !dilate {
		lo, hi = -1, 0
	}
	out := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			best := g.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			for dy := lo; dy <= hi; dy++ {
				for dx := lo; dx <= hi; dx++ {
					sx := clamp(x+dx, 0, w-1)
					sy := clamp(y+dy, 0, h-1)
					v := g.GrayAt(b.Min.X+sx, b.Min.Y+sy).Y
					if dilate == (v > best) {
						best = v
					}
				}
			}
			out.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: best})
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
