package http

import (
	"context"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/service"
)

// HealthChecker reports whether the backing storage is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	services *service.Services
	health   HealthChecker

	logger *logger.Logger
}

// NewHandler builds the REST handler. health may be nil, in which case
// /api/health always reports ok.
func NewHandler(services *service.Services, health HealthChecker, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		health:   health,
		logger:   logger,
	}
}
