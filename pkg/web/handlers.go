package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/teslashibe/go-facemetrics/pkg/face"
	"github.com/teslashibe/go-facemetrics/pkg/overlay"
	"github.com/teslashibe/go-facemetrics/pkg/protocol"
)

// handleHealth reports liveness and headline counters.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"uptime_s": int64(time.Since(s.started).Seconds()),
		"clients":  s.frameHub.ClientCount(),
		"frames":   s.pipeline.Seq(),
	})
}

// handleFrame returns the most recent processed frame.
func (s *Server) handleFrame(c *fiber.Ctx) error {
	s.frameMu.RLock()
	frame := s.lastFrame
	s.frameMu.RUnlock()

	if frame == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no frames processed yet",
		})
	}
	return c.JSON(frame)
}

// handleConfig returns the full pipeline configuration.
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(s.pipeline.Config())
}

// handleGetThresholds returns the classifier thresholds.
func (s *Server) handleGetThresholds(c *fiber.Ctx) error {
	return c.JSON(s.pipeline.Thresholds())
}

// handleSetThresholds tunes the classifier thresholds. Zero fields in
// the request keep their current values.
func (s *Server) handleSetThresholds(c *fiber.Ctx) error {
	var req face.StatusThresholds
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed thresholds: " + err.Error(),
		})
	}

	merged, err := s.pipeline.SetThresholds(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(merged)
}

// handleGetTransform returns the current display transform.
func (s *Server) handleGetTransform(c *fiber.Ctx) error {
	return c.JSON(s.pipeline.Mapper().Transform())
}

// handleSetTransform updates the display transform.
func (s *Server) handleSetTransform(c *fiber.Ctx) error {
	var req protocol.TransformData
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed transform: " + err.Error(),
		})
	}

	if err := s.pipeline.Mapper().SetTransform(req.Mirrored, req.Rotation); err != nil {
		if errors.Is(err, overlay.ErrInvalidRotation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(s.pipeline.Mapper().Transform())
}
