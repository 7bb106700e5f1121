package config

import (
	"testing"
	"time"
)

func TestPort(t *testing.T) {
	t.Setenv("PORT", "9000")
	if got := Port(); got != "9000" {
		t.Errorf("Port() = %q, want 9000", got)
	}

	t.Setenv("PORT", "")
	if got := Port(); got != DefaultPort {
		t.Errorf("Port() = %q, want default %q", got, DefaultPort)
	}
}

func TestCameraIndex(t *testing.T) {
	tests := []struct {
		name string
		val  string
		want int
	}{
		{"explicit index", "2", 2},
		{"unset", "", DefaultCameraIndex},
		{"unparsable", "not-a-number", DefaultCameraIndex},
		{"negative", "-3", DefaultCameraIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CAMERA_INDEX", tt.val)
			if got := CameraIndex(); got != tt.want {
				t.Errorf("CameraIndex() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMirrorDisplay(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"yes", false}, // ParseBool rejects it
	}

	for _, tt := range tests {
		t.Setenv("MIRROR_DISPLAY", tt.val)
		if got := MirrorDisplay(); got != tt.want {
			t.Errorf("MirrorDisplay() with %q = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestDisplayRotation(t *testing.T) {
	tests := []struct {
		val  string
		want int
	}{
		{"270", 270},
		{"-90", -90},
		{"", 0},
		{"ninety", 0},
	}

	for _, tt := range tests {
		t.Setenv("DISPLAY_ROTATION", tt.val)
		if got := DisplayRotation(); got != tt.want {
			t.Errorf("DisplayRotation() with %q = %d, want %d", tt.val, got, tt.want)
		}
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		val  string
		want time.Duration
	}{
		{"50", 50 * time.Millisecond},
		{"1000", time.Second},
		{"", 0},
		{"-5", 0},
		{"fast", 0},
	}

	for _, tt := range tests {
		t.Setenv("FRAME_INTERVAL_MS", tt.val)
		if got := FrameInterval(); got != tt.want {
			t.Errorf("FrameInterval() with %q = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestDetectorURL(t *testing.T) {
	t.Setenv("DETECTOR_URL", "ws://detector:9001/ws/detections")
	if got := DetectorURL(); got != "ws://detector:9001/ws/detections" {
		t.Errorf("DetectorURL() = %q", got)
	}

	t.Setenv("DETECTOR_URL", "")
	if got := DetectorURL(); got != "" {
		t.Errorf("DetectorURL() = %q, want empty", got)
	}
}
