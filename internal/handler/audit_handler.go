package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leadscout/api/internal/adapter"
	"github.com/leadscout/api/internal/dto"
	"github.com/leadscout/api/internal/service"
)

// maxTransportIssues caps the issue list returned over HTTP. The
// persisted audit keeps every issue.
const maxTransportIssues = 20

// AuditHandler triggers the website audit pipeline.
type AuditHandler struct {
	audits *service.AuditService
}

// NewAuditHandler wires a new AuditHandler instance.
func NewAuditHandler(audits *service.AuditService) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// Trigger handles POST /audit. A pipeline failure intentionally returns
// 200 with an error body so callers can tell "the audit ran and failed"
// apart from a transport failure.
func (h *AuditHandler) Trigger(c echo.Context) error {
	var req dto.AuditRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.URL = strings.TrimSpace(req.URL)
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	if req.URL == "" {
		return Error(c, http.StatusBadRequest, "url is required")
	}

	normalized, err := service.NormalizeWebsiteURL(req.URL)
	if err != nil {
		return Error(c, http.StatusBadRequest, "url is not valid")
	}

	var leadID *uuid.UUID
	if req.LeadID != "" {
		parsed, err := uuid.Parse(req.LeadID)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid lead id")
		}
		leadID = &parsed
	}

	result, err := h.audits.Run(c.Request().Context(), normalized, req.BusinessName, leadID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "audit failed: "+err.Error())
	}

	if result.Failed != "" {
		return c.JSON(http.StatusOK, dto.AuditResponse{
			AuditID: result.Audit.ID.String(),
			Error:   result.Failed,
		})
	}

	issues := result.Audit.Issues
	if len(issues) > maxTransportIssues {
		issues = issues[:maxTransportIssues]
	}

	return c.JSON(http.StatusOK, dto.AuditResponse{
		AuditID:         result.Audit.ID.String(),
		Scores:          result.Audit.Scores,
		OverallScore:    result.Audit.OverallScore,
		Issues:          issues,
		Recommendations: result.Audit.Recommendations,
		Summary:         result.Audit.Summary,
		AuditData: &dto.AuditData{
			Mobile:  formFactorScores(result.Mobile),
			Desktop: formFactorScores(result.Desktop),
		},
	})
}

func formFactorScores(audit *adapter.PageAudit) *dto.FormFactorScores {
	if audit == nil {
		return nil
	}
	round := func(key string) int {
		return int(audit.Scores[key]*100 + 0.5)
	}
	return &dto.FormFactorScores{
		Performance:   round("performance"),
		SEO:           round("seo"),
		Accessibility: round("accessibility"),
		BestPractices: round("best-practices"),
	}
}
