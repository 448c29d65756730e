package http

import (
	"time"

	"github.com/znbflyingant/updateDeviceConfig/internal/config"
	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/internal/service"
	"github.com/znbflyingant/updateDeviceConfig/internal/store"
)

type Handler struct {
	services *service.Services
	store    *store.Store
	cfg      *config.StructuredConfig

	logger  *logger.Logger
	started time.Time
}

func NewHandler(services *service.Services, records *store.Store, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		store:    records,
		cfg:      cfg,
		logger:   logger,
		started:  time.Now(),
	}
}
