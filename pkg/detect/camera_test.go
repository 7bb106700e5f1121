package detect

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/teslashibe/go-facemetrics/pkg/geom"
)

type stubGrabber struct {
	jpeg []byte
	err  error
}

func (g *stubGrabber) CaptureJPEG() ([]byte, error) { return g.jpeg, g.err }

type stubDetector struct {
	got  []byte
	dets []Detection
	err  error
}

func (d *stubDetector) Detect(jpeg []byte) ([]Detection, error) {
	d.got = jpeg
	return d.dets, d.err
}

func (d *stubDetector) Close() error { return nil }

func TestCameraSourceCapture(t *testing.T) {
	want := NewDetection(geom.Rect{Left: 10, Top: 10, Right: 50, Bottom: 50}, 640, 480)
	grabber := &stubGrabber{jpeg: []byte{0xff, 0xd8, 0xff}}
	detector := &stubDetector{dets: []Detection{want}}

	src := NewCameraSource(grabber, detector)
	got, err := src.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if len(got) != 1 || got[0].Box != want.Box {
		t.Errorf("Capture() = %+v, want one detection with box %+v", got, want.Box)
	}
	if !bytes.Equal(detector.got, grabber.jpeg) {
		t.Error("detector did not receive the grabbed frame")
	}
}

func TestCameraSourceGrabError(t *testing.T) {
	grabErr := errors.New("device unplugged")
	src := NewCameraSource(&stubGrabber{err: grabErr}, &stubDetector{})

	if _, err := src.Capture(context.Background()); !errors.Is(err, grabErr) {
		t.Errorf("Capture() error = %v, want wrapped %v", err, grabErr)
	}
}

func TestCameraSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewCameraSource(&stubGrabber{jpeg: []byte{1}}, &stubDetector{})
	if _, err := src.Capture(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Capture() error = %v, want context.Canceled", err)
	}
}
