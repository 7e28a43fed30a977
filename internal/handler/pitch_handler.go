package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leadscout/api/internal/dto"
	"github.com/leadscout/api/internal/entity"
	"github.com/leadscout/api/internal/repository"
	"github.com/leadscout/api/internal/service"
)

// PitchHandler advances pitch outreach statuses.
type PitchHandler struct {
	pitches *service.PitchService
}

// NewPitchHandler wires a new PitchHandler instance.
func NewPitchHandler(pitches *service.PitchService) *PitchHandler {
	return &PitchHandler{pitches: pitches}
}

// UpdateStatus handles PATCH /pitches/:id/status.
func (h *PitchHandler) UpdateStatus(c echo.Context) error {
	pitchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid pitch id")
	}

	var req dto.PitchStatusRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	status := entity.PitchStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	switch status {
	case entity.PitchSent, entity.PitchOpened, entity.PitchFeedback:
	default:
		return Error(c, http.StatusBadRequest, "unsupported status")
	}

	pitch, err := h.pitches.Advance(c.Request().Context(), pitchID, status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPitchNotFound):
			return Error(c, http.StatusNotFound, "pitch not found")
		case errors.Is(err, repository.ErrInvalidTransition):
			return Error(c, http.StatusConflict, "transition not allowed")
		default:
			return Error(c, http.StatusInternalServerError, "failed to update pitch")
		}
	}

	return Success(c, http.StatusOK, "pitch status updated", pitch)
}
