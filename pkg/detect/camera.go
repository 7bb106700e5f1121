package detect

import (
	"context"
	"fmt"
)

// FrameGrabber supplies JPEG frames, typically a local camera.
type FrameGrabber interface {
	CaptureJPEG() ([]byte, error)
}

// CameraSource runs a detector over frames from a grabber, turning a
// camera plus detector into a detection source for the pipeline.
type CameraSource struct {
	grabber  FrameGrabber
	detector Detector
}

// NewCameraSource pairs a frame grabber with a detector.
func NewCameraSource(grabber FrameGrabber, detector Detector) *CameraSource {
	return &CameraSource{grabber: grabber, detector: detector}
}

// Capture grabs one frame and detects the faces in it.
func (s *CameraSource) Capture(ctx context.Context) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jpeg, err := s.grabber.CaptureJPEG()
	if err != nil {
		return nil, fmt.Errorf("capture frame: %w", err)
	}

	return s.detector.Detect(jpeg)
}
