package main

import (
	"context"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/ramabhadrarao/face-recognition/internal/capture"
	"github.com/ramabhadrarao/face-recognition/internal/capture/source"
)

// Runs the capture pipeline end to end against the synthetic camera,
// without a database or recognition service. Useful for verifying the
// session lifecycle, zoom behavior and the presence heuristic on a new
// deployment.
func main() {
	color.Cyan("Capture pipeline diagnostic\n")

	acquirer := source.NewSyntheticAcquirer(source.SyntheticOptions{FacePresent: true})
	controller := capture.NewController(acquirer, nil, nil, capture.Options{
		PresencePeriod: 100 * time.Millisecond,
	})
	defer controller.Close()

	color.Yellow("\n[1] Starting capture session")
	if err := controller.Start(context.Background()); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	status, zoom := controller.Status()
	color.Green("State: %s (%s)", status.State, status.Detail)
	color.Green("Zoom: factor=%.2f bounds=[%.1f..%.1f] step=%.2f hardware=%v",
		zoom.Factor, zoom.Min, zoom.Max, zoom.Step, zoom.Hardware)

	color.Yellow("\n[2] Waiting for presence samples")
	deadline := time.Now().Add(2 * time.Second)
	var sample capture.PresenceSample
	for time.Now().Before(deadline) {
		if s, ok := controller.LatestSample(); ok {
			sample = s
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if sample.SampledAt.IsZero() {
		color.Red("Failed: no presence sample produced")
		os.Exit(1)
	}
	color.Green("Presence: present=%v confidence=%.1f ratio=%.4f",
		sample.Present, sample.Confidence, sample.SkinRatio)

	color.Yellow("\n[3] Auto-framing on the detected subject")
	state, _, err := controller.AutoFrame()
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Zoom after auto-frame: %.2f (hardware=%v)", state.Factor, state.Hardware)

	color.Yellow("\n[4] Capturing a still")
	artifact, err := controller.Capture()
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Artifact: %dx%d zoom=%.2f payload=%d bytes",
		artifact.Width, artifact.Height, artifact.ZoomFactor, len(artifact.JPEG))

	color.Yellow("\n[5] Stopping session")
	controller.Stop()
	color.Green("Released cleanly")

	color.Cyan("\nAll capture diagnostics passed")
}
