package http

import (
	"errors"
	"net/http"

	"github.com/znbflyingant/updateDeviceConfig/internal/logger"
	"github.com/znbflyingant/updateDeviceConfig/internal/service"
	"github.com/znbflyingant/updateDeviceConfig/internal/utils"
	"github.com/znbflyingant/updateDeviceConfig/models"
)

// writeData renders the success envelope.
func (h *Handler) writeData(w http.ResponseWriter, r *http.Request, message string, data any) {
	envelope := models.Envelope{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	}
	if _, err := utils.WriteJSON(w, envelope, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// writeMessage renders a data-less envelope with an explicit status.
func (h *Handler) writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	envelope := models.Envelope{
		Code:    status,
		Message: message,
	}
	if _, err := utils.WriteJSON(w, envelope, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// writeError is the single error boundary: every handler funnels its errors
// here, where they are logged once, mapped to a status code, and rendered as
// the envelope. Server-side failures hide their details behind a generic
// message; client failures echo the reason back.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	envelope := models.Envelope{Code: status}

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		envelope.Message = "validation failed"
		envelope.Errors = validationErr.Errors
	case status >= http.StatusInternalServerError:
		envelope.Message = http.StatusText(status)
	default:
		envelope.Message = err.Error()
	}

	log.Err(err).Int("status", status).Msg("request failed")

	if _, writeErr := utils.WriteJSON(w, envelope, status); writeErr != nil {
		log.Err(writeErr).Msg("error writing response")
	}
}
