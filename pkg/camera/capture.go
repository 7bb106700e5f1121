package camera

import (
	"fmt"
	"strings"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-facemetrics/internal/log"
)

// Capture reads frames from a local video device and encodes them as JPEG.
// Safe for concurrent use; gocv's VideoCapture is not.
type Capture struct {
	cfg    Config
	mu     sync.Mutex
	device *gocv.VideoCapture
	frame  gocv.Mat
}

// NewCapture creates a Capture for the given config. The device is not
// opened until Open is called.
func NewCapture(cfg Config) (*Capture, error) {
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("camera: invalid config: %s", strings.Join(problems, "; "))
	}
	return &Capture{cfg: cfg}, nil
}

// Open opens the video device and applies the configured resolution and
// frame rate. Drivers treat these as hints and may deliver a different mode.
func (c *Capture) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		return fmt.Errorf("camera: device %d already open", c.cfg.DeviceIndex)
	}

	device, err := gocv.OpenVideoCapture(c.cfg.DeviceIndex)
	if err != nil {
		return fmt.Errorf("camera: open device %d: %w", c.cfg.DeviceIndex, err)
	}

	device.Set(gocv.VideoCaptureFrameWidth, float64(c.cfg.Width))
	device.Set(gocv.VideoCaptureFrameHeight, float64(c.cfg.Height))
	device.Set(gocv.VideoCaptureFPS, float64(c.cfg.FPS))

	c.device = device
	c.frame = gocv.NewMat()

	log.Info("camera opened",
		"device", c.cfg.DeviceIndex,
		"width", int(device.Get(gocv.VideoCaptureFrameWidth)),
		"height", int(device.Get(gocv.VideoCaptureFrameHeight)),
		"fps", device.Get(gocv.VideoCaptureFPS))

	return nil
}

// CaptureJPEG grabs the next frame and returns it JPEG-encoded.
func (c *Capture) CaptureJPEG() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return nil, fmt.Errorf("camera: device not open")
	}

	if ok := c.device.Read(&c.frame); !ok || c.frame.Empty() {
		return nil, fmt.Errorf("camera: read frame from device %d", c.cfg.DeviceIndex)
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, c.frame,
		[]int{gocv.IMWriteJpegQuality, c.cfg.JPEGQuality})
	if err != nil {
		return nil, fmt.Errorf("camera: encode jpeg: %w", err)
	}
	defer buf.Close()

	// The buffer's backing memory is freed on Close, so copy it out.
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}

// Config returns the capture configuration.
func (c *Capture) Config() Config {
	return c.cfg
}

// Close releases the device and the reusable frame buffer.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return nil
	}

	err := c.device.Close()
	c.frame.Close()
	c.device = nil
	return err
}
