package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/leadscout/api/internal/adapter"
	"github.com/leadscout/api/internal/entity"
)

type mockLeadsRepository struct {
	getByID               func(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	upsertFromSearch      func(ctx context.Context, lead *entity.Lead) error
	setEnrichmentStatus   func(ctx context.Context, id uuid.UUID, from, to entity.EnrichmentStatus) error
	saveEnrichment        func(ctx context.Context, id uuid.UUID, enrichment *entity.Enrichment) error
	replaceDecisionMakers func(ctx context.Context, leadID uuid.UUID, makers []entity.DecisionMaker) error
	listDecisionMakers    func(ctx context.Context, leadID uuid.UUID) ([]entity.DecisionMaker, error)
}

func (m *mockLeadsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	return m.getByID(ctx, id)
}

func (m *mockLeadsRepository) UpsertFromSearch(ctx context.Context, lead *entity.Lead) error {
	return m.upsertFromSearch(ctx, lead)
}

func (m *mockLeadsRepository) SetEnrichmentStatus(ctx context.Context, id uuid.UUID, from, to entity.EnrichmentStatus) error {
	if m.setEnrichmentStatus == nil {
		return nil
	}
	return m.setEnrichmentStatus(ctx, id, from, to)
}

func (m *mockLeadsRepository) SaveEnrichment(ctx context.Context, id uuid.UUID, enrichment *entity.Enrichment) error {
	if m.saveEnrichment == nil {
		return nil
	}
	return m.saveEnrichment(ctx, id, enrichment)
}

func (m *mockLeadsRepository) ReplaceDecisionMakers(ctx context.Context, leadID uuid.UUID, makers []entity.DecisionMaker) error {
	if m.replaceDecisionMakers == nil {
		return nil
	}
	return m.replaceDecisionMakers(ctx, leadID, makers)
}

func (m *mockLeadsRepository) ListDecisionMakers(ctx context.Context, leadID uuid.UUID) ([]entity.DecisionMaker, error) {
	if m.listDecisionMakers == nil {
		return nil, nil
	}
	return m.listDecisionMakers(ctx, leadID)
}

type mockAuditsRepository struct {
	create                 func(ctx context.Context, audit *entity.Audit) error
	markRunning            func(ctx context.Context, id uuid.UUID) error
	complete               func(ctx context.Context, audit *entity.Audit) error
	fail                   func(ctx context.Context, id uuid.UUID, message string) error
	latestCompletedForLead func(ctx context.Context, leadID uuid.UUID) (*entity.Audit, error)
}

func (m *mockAuditsRepository) Create(ctx context.Context, audit *entity.Audit) error {
	if m.create == nil {
		if audit.ID == uuid.Nil {
			audit.ID = uuid.New()
		}
		return nil
	}
	return m.create(ctx, audit)
}

func (m *mockAuditsRepository) MarkRunning(ctx context.Context, id uuid.UUID) error {
	if m.markRunning == nil {
		return nil
	}
	return m.markRunning(ctx, id)
}

func (m *mockAuditsRepository) Complete(ctx context.Context, audit *entity.Audit) error {
	if m.complete == nil {
		return nil
	}
	return m.complete(ctx, audit)
}

func (m *mockAuditsRepository) Fail(ctx context.Context, id uuid.UUID, message string) error {
	if m.fail == nil {
		return nil
	}
	return m.fail(ctx, id, message)
}

func (m *mockAuditsRepository) LatestCompletedForLead(ctx context.Context, leadID uuid.UUID) (*entity.Audit, error) {
	return m.latestCompletedForLead(ctx, leadID)
}

type mockIntelligenceRepository struct {
	upsert      func(ctx context.Context, intel *entity.SalesIntelligence) error
	getByLeadID func(ctx context.Context, leadID uuid.UUID) (*entity.SalesIntelligence, error)
}

func (m *mockIntelligenceRepository) Upsert(ctx context.Context, intel *entity.SalesIntelligence) error {
	return m.upsert(ctx, intel)
}

func (m *mockIntelligenceRepository) GetByLeadID(ctx context.Context, leadID uuid.UUID) (*entity.SalesIntelligence, error) {
	return m.getByLeadID(ctx, leadID)
}

type mockPitchesRepository struct {
	getByID      func(ctx context.Context, id uuid.UUID) (*entity.Pitch, error)
	updateStatus func(ctx context.Context, id uuid.UUID, from, to entity.PitchStatus) error
}

func (m *mockPitchesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Pitch, error) {
	return m.getByID(ctx, id)
}

func (m *mockPitchesRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.PitchStatus) error {
	return m.updateStatus(ctx, id, from, to)
}

type mockUsersRepository struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.findByEmail(ctx, email)
}

// Adapter stubs as function types.

type techDetectorFunc func(ctx context.Context, websiteURL string) ([]string, error)

func (f techDetectorFunc) Detect(ctx context.Context, websiteURL string) ([]string, error) {
	return f(ctx, websiteURL)
}

type peopleFinderFunc func(ctx context.Context, companyName string) ([]adapter.Person, error)

func (f peopleFinderFunc) FindPeople(ctx context.Context, companyName string) ([]adapter.Person, error) {
	return f(ctx, companyName)
}

type performanceAuditorFunc func(ctx context.Context, url string, strategy adapter.Strategy) (*adapter.PageAudit, error)

func (f performanceAuditorFunc) Audit(ctx context.Context, url string, strategy adapter.Strategy) (*adapter.PageAudit, error) {
	return f(ctx, url, strategy)
}

type socialScraperFunc func(ctx context.Context, query string) (*adapter.SocialProfileResult, error)

func (f socialScraperFunc) Lookup(ctx context.Context, query string) (*adapter.SocialProfileResult, error) {
	return f(ctx, query)
}

type contentExtractorFunc func(ctx context.Context, url string) (*adapter.PageContent, error)

func (f contentExtractorFunc) Extract(ctx context.Context, url string) (*adapter.PageContent, error) {
	return f(ctx, url)
}

type businessSearcherFunc func(ctx context.Context, query, location string) ([]adapter.BusinessHit, error)

func (f businessSearcherFunc) Search(ctx context.Context, query, location string) ([]adapter.BusinessHit, error) {
	return f(ctx, query, location)
}

type narratorFunc func(ctx context.Context, system, prompt string) (string, error)

func (f narratorFunc) Generate(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}

func strptr(s string) *string { return &s }
