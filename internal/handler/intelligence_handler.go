package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leadscout/api/internal/repository"
	"github.com/leadscout/api/internal/service"
)

// IntelligenceHandler triggers sales intelligence synthesis.
type IntelligenceHandler struct {
	intelligence *service.IntelligenceService
}

// NewIntelligenceHandler wires a new IntelligenceHandler instance.
func NewIntelligenceHandler(intelligence *service.IntelligenceService) *IntelligenceHandler {
	return &IntelligenceHandler{intelligence: intelligence}
}

// Trigger handles POST /leads/:id/intelligence.
func (h *IntelligenceHandler) Trigger(c echo.Context) error {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	intel, err := h.intelligence.Synthesize(c.Request().Context(), leadID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLeadNotFound):
			return Error(c, http.StatusNotFound, "lead not found")
		case errors.Is(err, service.ErrUnparsableSynthesis):
			return Error(c, http.StatusBadGateway, service.ErrUnparsableSynthesis.Error())
		default:
			return Error(c, http.StatusInternalServerError, "intelligence synthesis failed: "+err.Error())
		}
	}

	return Success(c, http.StatusOK, "intelligence synthesized", intel)
}
