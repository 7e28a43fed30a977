package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leadscout/api/internal/dto"
	"github.com/leadscout/api/internal/repository"
	"github.com/leadscout/api/internal/service"
)

// EnrichHandler triggers the enrichment pipeline.
type EnrichHandler struct {
	enrichment *service.EnrichmentService
}

// NewEnrichHandler wires a new EnrichHandler instance.
func NewEnrichHandler(enrichment *service.EnrichmentService) *EnrichHandler {
	return &EnrichHandler{enrichment: enrichment}
}

// Trigger handles POST /leads/:id/enrich. The precondition failure for a
// lead without a website is a 400; a pipeline failure is a 500 with the
// lead left in a failed terminal state.
func (h *EnrichHandler) Trigger(c echo.Context) error {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid lead id")
	}

	result, err := h.enrichment.Enrich(c.Request().Context(), leadID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLeadNotFound):
			return Error(c, http.StatusNotFound, "lead not found")
		case errors.Is(err, service.ErrNoWebsite):
			return Error(c, http.StatusBadRequest, service.ErrNoWebsite.Error())
		default:
			return Error(c, http.StatusInternalServerError, "enrichment failed: "+err.Error())
		}
	}

	return Success(c, http.StatusOK, "enrichment completed", dto.EnrichResponse{
		LeadID:           leadID.String(),
		EnrichmentStatus: result.Status,
		Payload:          result.Payload,
		DecisionMakers:   result.DecisionMakers,
	})
}
