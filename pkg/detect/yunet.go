package detect

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-facemetrics/internal/log"
	"github.com/teslashibe/go-facemetrics/pkg/geom"
)

// YuNet uses OpenCV's FaceDetectorYN for face detection.
type YuNet struct {
	detector gocv.FaceDetectorYN
	config   Config
	mu       sync.Mutex // Protects inference
}

// NewYuNet creates a YuNet face detector using GoCV's built-in FaceDetectorYN.
func NewYuNet(cfg Config) (*YuNet, error) {
	// Check if model file exists first
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	// Create FaceDetectorYN with initial size (will be updated per-image)
	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"",                                        // No config file needed for ONNX
		image.Pt(cfg.InputWidth, cfg.InputHeight), // Initial input size
		float32(cfg.ConfidenceThresh),             // Score threshold
		0.3,                                       // NMS threshold
		5000,                                      // Top K
		int(gocv.NetBackendDefault),               // Backend
		int(gocv.NetTargetCPU),                    // Target
	)

	return &YuNet{
		detector: detector,
		config:   cfg,
	}, nil
}

// Detect finds faces in the JPEG image. Boxes and landmarks are returned
// in pixel coordinates; head pose is estimated from landmark geometry
// since YuNet does not report it.
func (d *YuNet) Detect(jpeg []byte) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Decode JPEG to Mat
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	// Update detector input size to match image
	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	// Prepare output matrix for faces
	faces := gocv.NewMat()
	defer faces.Close()

	// Run detection
	d.detector.Detect(img, &faces)

	// Parse results
	var detections []Detection
	for r := 0; r < faces.Rows(); r++ {
		// YuNet output format (15 columns):
		// 0-3:   x, y, w, h (bounding box in pixels)
		// 4-13:  5 landmarks as x,y pairs: right eye, left eye,
		//        nose tip, right mouth corner, left mouth corner
		//        (sides are subject-relative)
		// 14:    face score
		x := float64(faces.GetFloatAt(r, 0))
		y := float64(faces.GetFloatAt(r, 1))
		w := float64(faces.GetFloatAt(r, 2))
		h := float64(faces.GetFloatAt(r, 3))
		score := float64(faces.GetFloatAt(r, 14))

		det := NewDetection(
			geom.Rect{Left: x, Top: y, Right: x + w, Bottom: y + h},
			img.Cols(), img.Rows(),
		)
		det.Score = score
		det.Landmarks = map[LandmarkKind]geom.Point{
			RightEye:   landmarkAt(faces, r, 4),
			LeftEye:    landmarkAt(faces, r, 6),
			NoseBase:   landmarkAt(faces, r, 8),
			MouthRight: landmarkAt(faces, r, 10),
			MouthLeft:  landmarkAt(faces, r, 12),
		}
		det.Pitch, det.Roll, det.Yaw = estimatePose(det.Landmarks)

		detections = append(detections, det)
	}

	if len(detections) > 0 {
		log.Debug("yunet detection", "faces", len(detections))
	}

	return detections, nil
}

// landmarkAt reads an x,y landmark pair starting at the given column.
func landmarkAt(faces gocv.Mat, row, col int) geom.Point {
	return geom.Point{
		X: float64(faces.GetFloatAt(row, col)),
		Y: float64(faces.GetFloatAt(row, col+1)),
	}
}

// Close releases the detector resources.
func (d *YuNet) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return nil
}
