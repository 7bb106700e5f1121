// Package protocol defines the WebSocket message types exchanged with
// detector feeds and dashboard clients. Payloads are plain wire structs;
// conversion to domain types happens at the consuming boundary.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/teslashibe/go-facemetrics/pkg/geom"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Feed → pipeline messages
	TypeDetections MessageType = "detections" // One frame's worth of detections

	// Pipeline → dashboard messages
	TypeFrame  MessageType = "frame"  // Processed pipeline frame
	TypeStatus MessageType = "status" // Detection status transition

	// Dashboard → pipeline messages
	TypeTransform MessageType = "transform" // Display transform update

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Feed → Pipeline Message Types
// =============================================================================

// DetectionsData contains every face a detector found in one frame.
// An empty Faces slice is an explicit no-face frame.
type DetectionsData struct {
	ImageWidth  int        `json:"image_width"`
	ImageHeight int        `json:"image_height"`
	FrameID     uint64     `json:"frame_id,omitempty"`
	Faces       []FaceData `json:"faces,omitempty"`
}

// FaceData is the wire form of a single detection. Optional classifier
// outputs are pointers: a missing field means the detector could not
// estimate it, which is distinct from a confident zero.
type FaceData struct {
	Box geom.Rect `json:"box"` // Pixels

	Pitch float64 `json:"pitch,omitempty"` // Degrees, 0 = frontal
	Roll  float64 `json:"roll,omitempty"`
	Yaw   float64 `json:"yaw,omitempty"`

	// Landmark pixel positions keyed by kind name ("left-eye", ...)
	Landmarks map[string]geom.Point `json:"landmarks,omitempty"`

	SmileProb        *float64 `json:"smile_prob,omitempty"`
	LeftEyeOpenProb  *float64 `json:"left_eye_open_prob,omitempty"`
	RightEyeOpenProb *float64 `json:"right_eye_open_prob,omitempty"`

	Score      float64 `json:"score,omitempty"`
	TrackingID *int    `json:"tracking_id,omitempty"`
}

// =============================================================================
// Pipeline → Dashboard Message Types
// =============================================================================

// StatusData reports a detection status transition.
type StatusData struct {
	Status   string  `json:"status"`
	Previous string  `json:"previous,omitempty"`
	Quality  float64 `json:"quality"`
	RangeCm  float64 `json:"range_cm,omitempty"`
}

// =============================================================================
// Dashboard → Pipeline Message Types
// =============================================================================

// TransformData carries a display transform update.
type TransformData struct {
	Mirrored bool `json:"mirrored"`
	Rotation int  `json:"rotation"` // Degrees, multiple of 90
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
