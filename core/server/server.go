package server

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatusStore holds the most recent run report for the status endpoint.
// It is written by the watch loop and read by HTTP handlers.
type StatusStore struct {
	mu   sync.RWMutex
	last any
}

// Set replaces the stored report.
func (s *StatusStore) Set(report any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = report
}

// Get returns the stored report, or nil if no run has finished yet.
func (s *StatusStore) Get() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// New builds the status server application.
func New(store *StatusStore, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/status", func(c *fiber.Ctx) error {
		report := store.Get()
		if report == nil {
			return c.Status(fiber.StatusServiceUnavailable).
				JSON(fiber.Map{"status": "no run completed yet"})
		}
		return c.JSON(report)
	})

	return app
}

// Listen starts the server in the background and logs failures.
func Listen(app *fiber.App, cfg Config, log *zap.Logger) {
	go func() {
		log.Info("status server listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("status server stopped", zap.Error(err))
		}
	}()
}
