// Package camera captures frames from a local video device through OpenCV.
package camera

// Config holds capture settings for a local camera device.
type Config struct {
	DeviceIndex int `json:"device_index"` // V4L2 / AVFoundation device index
	Width       int `json:"width"`        // Frame width in pixels
	Height      int `json:"height"`       // Frame height in pixels
	FPS         int `json:"fps"`          // Target frames per second
	JPEGQuality int `json:"jpeg_quality"` // JPEG encode quality 1-100
}

// Capture bounds. Webcams outside these ranges are not a supported target.
const (
	MinWidth  = 160
	MaxWidth  = 4096
	MinHeight = 120
	MaxHeight = 2160
	MaxFPS    = 120
)

// DefaultConfig returns the recommended 720p capture configuration.
func DefaultConfig() Config {
	return Config{
		DeviceIndex: 0,
		Width:       1280,
		Height:      720,
		FPS:         30,
		JPEGQuality: 85,
	}
}

// LowResConfig returns a 480p configuration for constrained hardware.
func LowResConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 480
	return cfg
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.DeviceIndex < 0 {
		errors = append(errors, "device_index must not be negative")
	}
	if c.Width < MinWidth || c.Width > MaxWidth {
		errors = append(errors, "width must be between 160 and 4096")
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		errors = append(errors, "height must be between 120 and 2160")
	}
	if c.FPS < 1 || c.FPS > MaxFPS {
		errors = append(errors, "fps must be between 1 and 120")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errors = append(errors, "jpeg_quality must be between 1 and 100")
	}

	return errors
}
