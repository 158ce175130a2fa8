package arrival

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/YutaHarimoto2025/auto-line-arrival-message/calendar"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/config"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/estimator"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/gtfs"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/tracking"
)

// ArrivalEstimator resolves the destination arrival time for the tracked
// person. *estimator.Estimator satisfies it.
type ArrivalEstimator interface {
	Estimate(ctx context.Context) (estimator.Arrival, error)
}

// Notifier delivers the arrival message. *line.Client satisfies it.
type Notifier interface {
	Push(ctx context.Context, text string) error
}

// StatsSource reports dataset table sizes for the health endpoint.
// *gtfs.Store satisfies it.
type StatsSource interface {
	Stats() gtfs.Stats
}

// DatasetRefresher triggers an on-demand dataset refresh. May be nil
// when no archive URL is configured.
type DatasetRefresher interface {
	RefreshNow(ctx context.Context) error
}

// Server is the webhook HTTP surface: one GET route per physical
// checkpoint, plus health and dataset refresh.
type Server struct {
	app           *fiber.App
	tracker       *tracking.Tracker
	estimator     ArrivalEstimator
	notifier      Notifier
	stats         StatsSource
	refresher     DatasetRefresher
	defaultPerson string
	startedAt     time.Time
	now           func() time.Time
}

func NewServer(cfg config.ServerConfig, tracker *tracking.Tracker, est ArrivalEstimator, notifier Notifier, stats StatsSource, refresher DatasetRefresher) *Server {
	s := &Server{
		app:           fiber.New(fiber.Config{DisableStartupMessage: true}),
		tracker:       tracker,
		estimator:     est,
		notifier:      notifier,
		stats:         stats,
		refresher:     refresher,
		defaultPerson: cfg.DefaultPerson,
		startedAt:     time.Now(),
		now:           func() time.Time { return time.Now().In(calendar.JST) },
	}

	s.app.Use(recover.New())
	s.app.Get("/station_a", s.handleStationA)
	s.app.Get("/station_b", s.handleStationB)
	s.app.Get("/station_c", s.handleStationC)
	s.app.Get("/callback", s.handleCallback)
	s.app.Post("/callback", s.handleCallback)
	s.app.Get("/health", s.handleHealth)
	s.app.Post("/refresh", s.handleRefresh)
	return s
}

// Run blocks serving requests until Shutdown is called.
func (s *Server) Run(port int) error {
	return s.app.Listen(fmt.Sprintf(":%d", port))
}

func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(10 * time.Second)
}
