package integrations

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // exercise media is mostly animated GIF
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// ImageProcessor scales and re-encodes exercise images.
type ImageProcessor struct {
	settings ImageSettings
}

func NewImageProcessor(settings ImageSettings) *ImageProcessor {
	return &ImageProcessor{settings: settings}
}

// ProcessImage decodes input (the first frame for GIFs), fits it within the
// configured bounds and encodes it. It returns the encoded bytes and the
// file extension matching the format.
func (p *ImageProcessor) ProcessImage(input io.Reader) ([]byte, string, error) {
	img, _, err := image.Decode(input)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := p.calculateDimensions(bounds.Dx(), bounds.Dy())
	var processed image.Image = img
	if w != bounds.Dx() || h != bounds.Dy() {
		processed = p.resize(img, w, h)
	}
	if p.settings.Grayscale {
		processed = p.toGrayscale(processed)
	}
	if p.settings.Contrast != 0 && p.settings.Contrast != 1.0 {
		processed = p.adjustContrast(processed, p.settings.Contrast)
	}
	return p.encode(processed)
}

func (p *ImageProcessor) calculateDimensions(width, height int) (int, int) {
	maxW, maxH := p.settings.MaxWidth, p.settings.MaxHeight
	if maxW <= 0 || maxH <= 0 || (width <= maxW && height <= maxH) {
		return width, height
	}

	scale := float64(maxW) / float64(width)
	if hs := float64(maxH) / float64(height); hs < scale {
		scale = hs
	}
	w := max(int(float64(width)*scale), 1)
	h := max(int(float64(height)*scale), 1)
	return w, h
}

func (p *ImageProcessor) resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func (p *ImageProcessor) toGrayscale(img image.Image) image.Image {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}

func (p *ImageProcessor) adjustContrast(img image.Image, factor float64) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out.SetRGBA(x, y, color.RGBA{
				R: adjustChannel(uint8(r>>8), factor),
				G: adjustChannel(uint8(g>>8), factor),
				B: adjustChannel(uint8(b>>8), factor),
				A: uint8(a >> 8),
			})
		}
	}
	return out
}

// adjustChannel scales value away from mid gray and clamps to 0-255.
func adjustChannel(value uint8, factor float64) uint8 {
	v := (float64(value)-128)*factor + 128
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (p *ImageProcessor) encode(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	switch p.settings.Format {
	case "jpeg", "jpg", "":
		quality := p.settings.Quality
		if quality <= 0 {
			quality = 85
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
		}
		return buf.Bytes(), ".jpg", nil
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
		}
		return buf.Bytes(), ".png", nil
	}
	return nil, "", fmt.Errorf("unsupported format: %s", p.settings.Format)
}
