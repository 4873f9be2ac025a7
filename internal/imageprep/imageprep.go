// Package imageprep prepares photographed receipts for text recognition.
// The output is a high-contrast black-and-white bitmap; faded thermal-paper
// ink survives the fixed luminance threshold while the paper background does
// not.
package imageprep

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

const (
	// MaxWidth is the width receipts are downscaled to before recognition.
	// Images narrower than this are never upscaled.
	MaxWidth = 1200

	// BinarizeThreshold is the luminance cut between ink and background.
	// 185 was tuned on real faded and colored receipts; lower values eat
	// thin strokes, higher values keep paper texture as noise.
	BinarizeThreshold = 185
)

// Prepare converts raw image bytes into a bitmap optimized for OCR:
// grayscale, contrast normalization, sharpening, conditional downscale and
// fixed-threshold binarization, encoded as lossless PNG.
//
// Preparation never fails the extraction: if any step errors or panics the
// original bytes are returned so recognition can still be attempted on the
// unprocessed image.
func Prepare(raw []byte) []byte {
	out, err := prepare(raw)
	if err != nil || len(out) == 0 {
		return raw
	}
	return out
}

func prepare(raw []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("imageprep: recovered: %v", r)
		}
	}()

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imageprep: decode: %w", err)
	}

	gray := toGray(imaging.Grayscale(img))
	stretchContrast(gray)

	sharpened := imaging.Sharpen(gray, 1.0)

	if sharpened.Bounds().Dx() > MaxWidth {
		sharpened = imaging.Resize(sharpened, MaxWidth, 0, imaging.Lanczos)
	}

	bw := binarize(sharpened, BinarizeThreshold)

	var buf bytes.Buffer
	if err := png.Encode(&buf, bw); err != nil {
		return nil, fmt.Errorf("imageprep: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// toGray flattens an already-grayscaled image into an 8-bit gray buffer.
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// stretchContrast normalizes the dynamic range in place: the darkest pixel
// maps to 0 and the brightest to 255. Flat images are left untouched.
func stretchContrast(gray *image.Gray) {
	min, max := uint8(255), uint8(0)
	for _, px := range gray.Pix {
		if px < min {
			min = px
		}
		if px > max {
			max = px
		}
	}
	if max <= min {
		return
	}
	scale := 255.0 / float64(max-min)
	for i, px := range gray.Pix {
		gray.Pix[i] = uint8(float64(px-min)*scale + 0.5)
	}
}

// binarize maps every pixel to pure black or white around the threshold.
func binarize(img image.Image, threshold uint8) *image.Gray {
	bounds := img.Bounds()
	bw := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if g.Y >= threshold {
				bw.SetGray(x, y, color.Gray{Y: 255})
			} else {
				bw.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return bw
}
