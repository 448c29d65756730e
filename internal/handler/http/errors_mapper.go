package http

import (
	"errors"
	"net/http"

	"github.com/znbflyingant/updateDeviceConfig/internal/adapter"
	"github.com/znbflyingant/updateDeviceConfig/internal/service"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON: http.StatusBadRequest,
	ErrInvalidForm: http.StatusBadRequest,

	service.ErrEmptyBatch:          http.StatusBadRequest,
	service.ErrDuplicateRole:       http.StatusBadRequest,
	service.ErrUnsupportedFileType: http.StatusBadRequest,
	service.ErrKeyNotFound:         http.StatusNotFound,

	adapter.ErrAuth:           http.StatusBadGateway,
	adapter.ErrUpdateRejected: http.StatusConflict,
	adapter.ErrMissingRoleArn: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var upstreamErr *adapter.UpstreamError
	if errors.As(err, &upstreamErr) {
		return http.StatusBadGateway
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
