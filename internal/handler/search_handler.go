package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leadscout/api/internal/dto"
	"github.com/leadscout/api/internal/service"
)

// SearchHandler triggers business discovery searches.
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler wires a new SearchHandler instance.
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Discover handles POST /leads/search.
func (h *SearchHandler) Discover(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Query = strings.TrimSpace(req.Query)
	req.Location = strings.TrimSpace(req.Location)

	leads, err := h.search.Discover(c.Request().Context(), req.Query, req.Location)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return Error(c, http.StatusBadRequest, "query is required")
		}
		return Error(c, http.StatusInternalServerError, "search failed")
	}

	return Success(c, http.StatusOK, "search completed", map[string]any{
		"count": len(leads),
		"leads": leads,
	})
}
