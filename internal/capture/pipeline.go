package capture

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"time"

	xdraw "golang.org/x/image/draw"
)

// Encoding quality of captured stills, on the 0-100 JPEG scale.
const artifactJPEGQuality = 95

// renderStill rasterizes the current frame into the output image. In
// hardware mode (or at factor 1) the native frame is used as-is. In
// simulated mode the user was viewing a zoomed-in crop, so the centered
// sub-rectangle of side nativeDimension/factor is scaled back up to the
// full output dimensions to reproduce exactly what was on screen.
func renderStill(frame image.Image, zoom ZoomState) image.Image {
	if zoom.Hardware || zoom.Factor <= 1 {
		return frame
	}

	bounds := frame.Bounds()
	src := cropRect(bounds, zoom.Factor)

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), frame, src, xdraw.Src, nil)
	return dst
}

// cropRect computes the centered source rectangle for a simulated zoom
// factor: width and height are the native dimensions divided by the
// factor.
func cropRect(bounds image.Rectangle, factor float64) image.Rectangle {
	width := bounds.Dx()
	height := bounds.Dy()

	cropW := int(float64(width) / factor)
	cropH := int(float64(height) / factor)

	x0 := bounds.Min.X + (width-cropW)/2
	y0 := bounds.Min.Y + (height-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}

// encodeArtifact produces the single still-image artifact: JPEG at
// fixed quality, wrapped as a data URI for the form field contract.
func encodeArtifact(img image.Image, zoomFactor float64) (Artifact, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: artifactJPEGQuality}); err != nil {
		return Artifact{}, err
	}

	raw := buf.Bytes()
	bounds := img.Bounds()
	return Artifact{
		DataURI:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw),
		JPEG:       raw,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		ZoomFactor: zoomFactor,
		CapturedAt: time.Now(),
	}, nil
}
