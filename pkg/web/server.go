// Package web serves the face-metrics dashboard: a REST API over the
// pipeline state and a websocket feed of processed frames.
package web

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/teslashibe/go-facemetrics/internal/log"
	"github.com/teslashibe/go-facemetrics/pkg/face"
	"github.com/teslashibe/go-facemetrics/pkg/hub"
	"github.com/teslashibe/go-facemetrics/pkg/pipeline"
	"github.com/teslashibe/go-facemetrics/pkg/protocol"
)

// Server is the dashboard server. It is the pipeline's Publisher:
// frames land here, the latest one is kept for the REST API, and every
// frame fans out to websocket clients.
type Server struct {
	app      *fiber.App
	port     string
	pipeline *pipeline.Pipeline

	frameMu    sync.RWMutex
	lastFrame  *pipeline.Frame
	lastStatus face.Status

	frameHub *hub.Hub
	started  time.Time
}

// NewServer builds the dashboard around a pipeline.
func NewServer(port string, p *pipeline.Pipeline) *Server {
	s := &Server{
		port:     port,
		pipeline: p,
		frameHub: hub.New("frames"),
		started:  time.Now(),
	}
	s.frameHub.OnClientMessage = s.handleClientMessage

	app := fiber.New(fiber.Config{
		AppName:               "facemetrics dashboard",
		DisableStartupMessage: true,
		JSONEncoder:           jsoniter.Marshal,
		JSONDecoder:           jsoniter.Unmarshal,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/frame", s.handleFrame)
	api.Get("/config", s.handleConfig)
	api.Get("/thresholds", s.handleGetThresholds)
	api.Post("/thresholds", s.handleSetThresholds)
	api.Get("/transform", s.handleGetTransform)
	api.Post("/transform", s.handleSetTransform)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))

	s.app = app
	return s
}

// Start runs the hub and serves until the listener fails or Shutdown is
// called. The context bounds the hub's lifetime.
func (s *Server) Start(ctx context.Context) error {
	go s.frameHub.Run(ctx)

	log.Info("dashboard listening", "addr", "http://localhost:"+s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync(ctx context.Context) {
	go func() {
		if err := s.Start(ctx); err != nil {
			log.Error("web server stopped", "error", err)
		}
	}()
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// PublishFrame implements pipeline.Publisher: it stores the latest
// frame for the REST API and broadcasts it to websocket clients, with a
// separate status message on every transition.
func (s *Server) PublishFrame(f pipeline.Frame) {
	s.frameMu.Lock()
	prev := s.lastStatus
	s.lastFrame = &f
	s.lastStatus = f.Status
	s.frameMu.Unlock()

	if f.Status != prev {
		s.broadcast(protocol.TypeStatus, protocol.StatusData{
			Status:   f.Status.String(),
			Previous: prev.String(),
			Quality:  f.Raw.Quality,
			RangeCm:  f.RangeCm,
		})
	}

	s.broadcast(protocol.TypeFrame, f)
}

// broadcast wraps a payload in the protocol envelope and hands it to
// the hub.
func (s *Server) broadcast(msgType protocol.MessageType, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		log.Error("failed to encode broadcast payload", "type", string(msgType), "error", err)
		return
	}
	data, err := msg.Bytes()
	if err != nil {
		log.Error("failed to encode broadcast message", "type", string(msgType), "error", err)
		return
	}
	s.frameHub.Broadcast(hub.NewJSONMessage(data))
}

// handleClientMessage applies control messages sent by dashboard
// clients over the frame socket.
func (s *Server) handleClientMessage(clientID string, data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		log.Warn("ignoring malformed client message", "client", clientID, "error", err)
		return
	}

	switch msg.Type {
	case protocol.TypeTransform:
		var tf protocol.TransformData
		if err := msg.ParseData(&tf); err != nil {
			log.Warn("ignoring malformed transform update", "client", clientID, "error", err)
			return
		}
		if err := s.pipeline.Mapper().SetTransform(tf.Mirrored, tf.Rotation); err != nil {
			log.Warn("rejected transform update", "client", clientID, "error", err)
			return
		}
		log.Info("display transform updated", "client", clientID,
			"mirrored", tf.Mirrored, "rotation", tf.Rotation)

	default:
		log.Debug("ignoring client message", "client", clientID, "type", string(msg.Type))
	}
}

// handleFramesWS serves one websocket client: seed it with the latest
// frame, then stream until it disconnects.
func (s *Server) handleFramesWS(c *websocket.Conn) {
	client := hub.NewClient(s.frameHub, c)

	s.frameMu.RLock()
	last := s.lastFrame
	s.frameMu.RUnlock()

	if last != nil {
		if msg, err := protocol.NewMessage(protocol.TypeFrame, *last); err == nil {
			if data, err := msg.Bytes(); err == nil {
				client.Send(hub.NewJSONMessage(data))
			}
		}
	}

	client.Run()
}
