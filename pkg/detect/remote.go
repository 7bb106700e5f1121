package detect

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-facemetrics/internal/log"
	"github.com/teslashibe/go-facemetrics/pkg/protocol"
)

// Reconnect backoff bounds for the remote feed.
const (
	remoteBackoffMin = time.Second
	remoteBackoffMax = 30 * time.Second
)

// RemoteSource consumes detections from a remote detector feed over
// WebSocket. Only the newest frame is kept: a consumer that falls behind
// skips intermediate frames instead of queueing them.
type RemoteSource struct {
	url string

	mu     sync.Mutex
	latest []Detection
	fresh  bool

	conn    *websocket.Conn
	writeMu sync.Mutex // Guards conn writes
	closed  bool
}

// NewRemoteSource creates a source that reads from the given ws:// URL.
func NewRemoteSource(url string) *RemoteSource {
	return &RemoteSource{url: url}
}

// Run connects to the feed and consumes messages until the context is
// cancelled, reconnecting with backoff on failure.
func (s *RemoteSource) Run(ctx context.Context) error {
	backoff := remoteBackoffMin

	for {
		if err := s.connect(ctx); err != nil {
			log.Warn("remote feed connect failed", "url", s.url, "err", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, remoteBackoffMax)
			continue
		}
		backoff = remoteBackoffMin

		if err := s.readLoop(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("remote feed disconnected", "url", s.url, "err", err)
		}
	}
}

func (s *RemoteSource) connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.url, err)
	}

	s.writeMu.Lock()
	s.conn = conn
	s.writeMu.Unlock()

	log.Info("remote feed connected", "url", s.url)
	return nil
}

func (s *RemoteSource) readLoop(ctx context.Context) error {
	// Close the connection when the context ends so ReadMessage unblocks
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.closeConn()
		case <-done:
		}
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return err
		}

		msg, err := protocol.ParseMessage(data)
		if err != nil {
			log.Debug("remote feed bad message", "err", err)
			continue
		}

		switch msg.Type {
		case protocol.TypeDetections:
			s.handleDetections(msg)

		case protocol.TypePing:
			s.handlePing(msg)
		}
	}
}

func (s *RemoteSource) handleDetections(msg *protocol.Message) {
	data, err := msg.GetDetectionsData()
	if err != nil {
		log.Debug("remote feed bad detections payload", "err", err)
		return
	}

	dets := make([]Detection, 0, len(data.Faces))
	for _, f := range data.Faces {
		dets = append(dets, FromWire(f, data.ImageWidth, data.ImageHeight))
	}

	s.mu.Lock()
	s.latest = dets
	s.fresh = true
	s.mu.Unlock()
}

func (s *RemoteSource) handlePing(msg *protocol.Message) {
	ping, err := msg.GetPingData()
	if err != nil {
		return
	}
	pong, err := protocol.NewPongMessage(ping.ID, msg.Timestamp, time.Now().UnixMilli())
	if err != nil {
		return
	}
	payload, err := pong.Bytes()
	if err != nil {
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.conn != nil {
		s.conn.WriteMessage(websocket.TextMessage, payload)
	}
}

// Capture returns the newest frame's detections exactly once.
// ErrNoFrame means no new frame has arrived since the previous call;
// an empty slice is an explicit no-face frame.
func (s *RemoteSource) Capture(_ context.Context) ([]Detection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fresh {
		return nil, ErrNoFrame
	}
	s.fresh = false
	return s.latest, nil
}

func (s *RemoteSource) closeConn() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

// Close tears down the connection.
func (s *RemoteSource) Close() error {
	s.closeConn()
	return nil
}
