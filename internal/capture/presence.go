package capture

import (
	"image"
	"time"
)

const (
	// Fraction of the shorter frame dimension used as the side of the
	// centered sampling square.
	presenceRegionFraction = 0.6

	// Strict lower bound on the skin-pixel ratio for a positive sample.
	presenceRatioThreshold = 0.05

	// Confidence is the ratio scaled so that 20% skin pixels saturate it.
	presenceConfidenceScale = 500
)

// Detect classifies the center region of a frame as face-like or not.
// It is a pure function: the same pixel buffer always yields the same
// sample. The rule is a coarse skin-tone ratio, lighting and skin-tone
// sensitive; real detection is delegated to the recognition service.
func Detect(frame image.Image) PresenceSample {
	bounds := frame.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	sample := PresenceSample{SampledAt: time.Now()}
	if width <= 0 || height <= 0 {
		return sample
	}

	shorter := width
	if height < shorter {
		shorter = height
	}
	side := int(float64(shorter) * presenceRegionFraction)
	if side <= 0 {
		return sample
	}

	x0 := bounds.Min.X + (width-side)/2
	y0 := bounds.Min.Y + (height-side)/2

	skin := 0
	total := side * side
	for y := y0; y < y0+side; y++ {
		for x := x0; x < x0+side; x++ {
			r16, g16, b16, _ := frame.At(x, y).RGBA()
			r := int(r16 >> 8)
			g := int(g16 >> 8)
			b := int(b16 >> 8)
			if isSkinPixel(r, g, b) {
				skin++
			}
		}
	}

	ratio := float64(skin) / float64(total)
	sample.SkinRatio = ratio
	sample.Present = ratio > presenceRatioThreshold
	sample.Confidence = ratio * presenceConfidenceScale
	if sample.Confidence > 100 {
		sample.Confidence = 100
	}
	return sample
}

// isSkinPixel applies the fixed RGB rule for skin-like colors.
func isSkinPixel(r, g, b int) bool {
	diff := r - g
	if diff < 0 {
		diff = -diff
	}
	return r > 95 && g > 40 && b > 20 && r > g && r > b && diff > 15
}
