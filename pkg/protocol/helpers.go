package protocol

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewDetectionsMessage creates a detections message for one frame.
// Pass an empty faces slice to signal an explicit no-face frame.
func NewDetectionsMessage(imageWidth, imageHeight int, frameID uint64, faces []FaceData) (*Message, error) {
	return NewMessage(TypeDetections, DetectionsData{
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
		FrameID:     frameID,
		Faces:       faces,
	})
}

// NewStatusMessage creates a status transition message.
func NewStatusMessage(status, previous string, quality, rangeCm float64) (*Message, error) {
	return NewMessage(TypeStatus, StatusData{
		Status:   status,
		Previous: previous,
		Quality:  quality,
		RangeCm:  rangeCm,
	})
}

// NewTransformMessage creates a display transform update message.
func NewTransformMessage(mirrored bool, rotation int) (*Message, error) {
	return NewMessage(TypeTransform, TransformData{
		Mirrored: mirrored,
		Rotation: rotation,
	})
}

// NewPingMessage creates a ping message
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{
		ID:        id,
		Timestamp: 0, // Will be set by NewMessage
	})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}

// =============================================================================
// Helper functions for parsing messages
// =============================================================================

// GetDetectionsData extracts detections data from a message
func (m *Message) GetDetectionsData() (*DetectionsData, error) {
	var data DetectionsData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetStatusData extracts status data from a message
func (m *Message) GetStatusData() (*StatusData, error) {
	var data StatusData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetTransformData extracts transform data from a message
func (m *Message) GetTransformData() (*TransformData, error) {
	var data TransformData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPingData extracts ping data from a message
func (m *Message) GetPingData() (*PingData, error) {
	var data PingData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPongData extracts pong data from a message
func (m *Message) GetPongData() (*PongData, error) {
	var data PongData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
