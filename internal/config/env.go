// Package config provides configuration helpers for go-facemetrics commands.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default command configuration.
const (
	DefaultPort        = "8090"
	DefaultCameraIndex = 0
)

// Port returns the dashboard port from PORT env var.
// Falls back to DefaultPort if not set.
func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return DefaultPort
}

// ModelPath returns the detector model path from MODEL_PATH env var.
// Exits if not set.
func ModelPath() string {
	path := os.Getenv("MODEL_PATH")
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: MODEL_PATH environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: MODEL_PATH=models/face_detection_yunet.onnx go run ./cmd/...")
		os.Exit(1)
	}
	return path
}

// CameraIndex returns the capture device index from CAMERA_INDEX env var.
// Falls back to DefaultCameraIndex if not set or unparsable.
func CameraIndex() int {
	if v := os.Getenv("CAMERA_INDEX"); v != "" {
		if idx, err := strconv.Atoi(v); err == nil && idx >= 0 {
			return idx
		}
	}
	return DefaultCameraIndex
}

// DetectorURL returns the remote detector feed URL from DETECTOR_URL env var.
// Empty means no remote feed is configured.
func DetectorURL() string {
	return os.Getenv("DETECTOR_URL")
}

// MirrorDisplay reports whether the overlay should be mirrored for a
// selfie-style preview, from the MIRROR_DISPLAY env var.
func MirrorDisplay() bool {
	v, err := strconv.ParseBool(os.Getenv("MIRROR_DISPLAY"))
	return err == nil && v
}

// DisplayRotation returns the display rotation in degrees from the
// DISPLAY_ROTATION env var. Falls back to 0 if not set or unparsable;
// the overlay mapper rejects values that are not multiples of 90.
func DisplayRotation() int {
	if v := os.Getenv("DISPLAY_ROTATION"); v != "" {
		if deg, err := strconv.Atoi(v); err == nil {
			return deg
		}
	}
	return 0
}

// FrameInterval returns the pipeline tick interval from the
// FRAME_INTERVAL_MS env var. Zero means use the runner default.
func FrameInterval() time.Duration {
	if v := os.Getenv("FRAME_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 0
}

// LogLevel returns the log level from LOG_LEVEL env var.
func LogLevel() string {
	return os.Getenv("LOG_LEVEL")
}
