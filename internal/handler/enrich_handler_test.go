package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leadscout/api/internal/entity"
	"github.com/leadscout/api/internal/repository"
	"github.com/leadscout/api/internal/service"
)

func newEnrichContext(t *testing.T, leadID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/leads/"+leadID+"/enrich", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/leads/:id/enrich")
	c.SetParamNames("id")
	c.SetParamValues(leadID)
	return c, rec
}

func TestEnrichHandler_Trigger_Success(t *testing.T) {
	leadID := uuid.New()
	website := "https://kopisejahtera.example"
	repo := &stubLeadsRepo{lead: &entity.Lead{
		ID:               leadID,
		Name:             "Warung Kopi Sejahtera",
		Website:          &website,
		EnrichmentStatus: entity.EnrichmentPending,
	}}
	svc := service.NewEnrichmentService(repo, service.EnrichmentSources{}, service.DecisionMakerVocabulary{}, "ID", nil)
	handler := NewEnrichHandler(svc)

	c, rec := newEnrichContext(t, leadID.String())
	if err := handler.Trigger(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Status != "success" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestEnrichHandler_Trigger_NoWebsite(t *testing.T) {
	leadID := uuid.New()
	repo := &stubLeadsRepo{lead: &entity.Lead{ID: leadID, Name: "No Site Co"}}
	svc := service.NewEnrichmentService(repo, service.EnrichmentSources{}, service.DecisionMakerVocabulary{}, "ID", nil)
	handler := NewEnrichHandler(svc)

	c, rec := newEnrichContext(t, leadID.String())
	if err := handler.Trigger(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for lead without website, got %d", rec.Code)
	}
}

func TestEnrichHandler_Trigger_LeadNotFound(t *testing.T) {
	repo := &stubLeadsRepo{getErr: repository.ErrLeadNotFound}
	svc := service.NewEnrichmentService(repo, service.EnrichmentSources{}, service.DecisionMakerVocabulary{}, "ID", nil)
	handler := NewEnrichHandler(svc)

	c, rec := newEnrichContext(t, uuid.NewString())
	if err := handler.Trigger(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEnrichHandler_Trigger_InvalidID(t *testing.T) {
	svc := service.NewEnrichmentService(&stubLeadsRepo{}, service.EnrichmentSources{}, service.DecisionMakerVocabulary{}, "ID", nil)
	handler := NewEnrichHandler(svc)

	c, rec := newEnrichContext(t, "not-a-uuid")
	if err := handler.Trigger(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}
