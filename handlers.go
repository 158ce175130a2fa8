package arrival

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/YutaHarimoto2025/auto-line-arrival-message/tracking"
)

func (s *Server) person(c *fiber.Ctx) string {
	return c.Query("person", s.defaultPerson)
}

func (s *Server) handleStationA(c *fiber.Ctx) error {
	person := s.person(c)
	now := s.now()
	if err := s.tracker.RecordA(person, now); err != nil {
		log.Error().Err(err).Str("person", person).Msg("failed to record checkpoint A")
		return c.Status(fiber.StatusInternalServerError).SendString("tracking failure")
	}
	log.Info().Str("person", person).Time("at", now).Msg("checkpoint A recorded")
	return c.SendString("Recorded A")
}

func (s *Server) handleStationB(c *fiber.Ctx) error {
	person := s.person(c)
	now := s.now()
	ok, err := s.tracker.RecordB(person, now)
	if err != nil {
		log.Error().Err(err).Str("person", person).Msg("failed to record checkpoint B")
		return c.Status(fiber.StatusInternalServerError).SendString("tracking failure")
	}
	if !ok {
		log.Info().Str("person", person).Msg("checkpoint B outside the A-B window, cleared")
		return c.SendString("Invalid A-B duration")
	}
	log.Info().Str("person", person).Time("at", now).Msg("checkpoint B recorded")
	return c.SendString("Recorded B")
}

func (s *Server) handleStationC(c *fiber.Ctx) error {
	person := s.person(c)
	now := s.now()
	status, err := s.tracker.CheckC(person, now)
	if err != nil {
		log.Error().Err(err).Str("person", person).Msg("failed to check checkpoint C")
		return c.Status(fiber.StatusInternalServerError).SendString("tracking failure")
	}

	switch status {
	case tracking.CTooSlow:
		return c.SendString("Too slow (B-C)")
	case tracking.CNoRecord:
		return c.Status(fiber.StatusBadRequest).SendString("B time not found or A-B check failed")
	}

	arr, err := s.estimator.Estimate(c.UserContext())
	if err != nil {
		log.Error().Err(err).Str("person", person).Msg("arrival estimation failed")
		return c.Status(fiber.StatusBadGateway).SendString("estimation failure")
	}

	msg := fmt.Sprintf("%sは%s駅に %s 頃に到着予定です。", person, arr.Station, arr.Time)
	if err := s.notifier.Push(c.UserContext(), msg); err != nil {
		log.Error().Err(err).Str("person", person).Msg("notification push failed")
		return c.Status(fiber.StatusBadGateway).SendString("notification failure")
	}

	if err := s.tracker.Reset(person); err != nil {
		log.Error().Err(err).Str("person", person).Msg("failed to reset checkpoint record")
	}
	log.Info().Str("person", person).Str("arrival", arr.Time).Str("station", arr.Station).Msg("arrival notification sent")
	return c.SendString("Success: " + msg)
}

func (s *Server) handleCallback(c *fiber.Ctx) error {
	log.Info().Bytes("body", c.Body()).Msg("callback received")
	return c.SendString("OK")
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "ok",
		"dataset":        s.stats.Stats(),
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) handleRefresh(c *fiber.Ctx) error {
	if s.refresher == nil {
		return c.Status(fiber.StatusNotImplemented).SendString("no archive URL configured")
	}
	if err := s.refresher.RefreshNow(c.UserContext()); err != nil {
		log.Error().Err(err).Msg("manual dataset refresh failed")
		return c.Status(fiber.StatusInternalServerError).SendString("refresh failure")
	}
	return c.SendString("refreshed")
}
