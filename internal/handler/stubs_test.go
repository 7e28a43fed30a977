package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/leadscout/api/internal/adapter"
	"github.com/leadscout/api/internal/entity"
)

// stubLeadsRepo is a configurable in-memory LeadsRepository.
type stubLeadsRepo struct {
	lead       *entity.Lead
	getErr     error
	upserted   []*entity.Lead
	upsertErr  error
	statusErr  error
	saveErr    error
	makers     []entity.DecisionMaker
	replaceErr error
}

func (s *stubLeadsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.lead, nil
}

func (s *stubLeadsRepo) UpsertFromSearch(ctx context.Context, lead *entity.Lead) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserted = append(s.upserted, lead)
	return nil
}

func (s *stubLeadsRepo) SetEnrichmentStatus(ctx context.Context, id uuid.UUID, from, to entity.EnrichmentStatus) error {
	return s.statusErr
}

func (s *stubLeadsRepo) SaveEnrichment(ctx context.Context, id uuid.UUID, enrichment *entity.Enrichment) error {
	return s.saveErr
}

func (s *stubLeadsRepo) ReplaceDecisionMakers(ctx context.Context, leadID uuid.UUID, makers []entity.DecisionMaker) error {
	return s.replaceErr
}

func (s *stubLeadsRepo) ListDecisionMakers(ctx context.Context, leadID uuid.UUID) ([]entity.DecisionMaker, error) {
	return s.makers, nil
}

// stubAuditsRepo is a configurable in-memory AuditsRepository.
type stubAuditsRepo struct {
	completed   *entity.Audit
	failedMsg   string
	latest      *entity.Audit
	latestErr   error
	completeErr error
}

func (s *stubAuditsRepo) Create(ctx context.Context, audit *entity.Audit) error {
	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	return nil
}

func (s *stubAuditsRepo) MarkRunning(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubAuditsRepo) Complete(ctx context.Context, audit *entity.Audit) error {
	if s.completeErr != nil {
		return s.completeErr
	}
	s.completed = audit
	return nil
}

func (s *stubAuditsRepo) Fail(ctx context.Context, id uuid.UUID, message string) error {
	s.failedMsg = message
	return nil
}

func (s *stubAuditsRepo) LatestCompletedForLead(ctx context.Context, leadID uuid.UUID) (*entity.Audit, error) {
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	return s.latest, nil
}

// stubPitchesRepo is a configurable in-memory PitchesRepository.
type stubPitchesRepo struct {
	pitch     *entity.Pitch
	getErr    error
	updateErr error
}

func (s *stubPitchesRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Pitch, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.pitch, nil
}

func (s *stubPitchesRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.PitchStatus) error {
	return s.updateErr
}

// stubIntelRepo is a configurable in-memory IntelligenceRepository.
type stubIntelRepo struct {
	stored    *entity.SalesIntelligence
	upsertErr error
}

func (s *stubIntelRepo) Upsert(ctx context.Context, intel *entity.SalesIntelligence) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.stored = intel
	return nil
}

func (s *stubIntelRepo) GetByLeadID(ctx context.Context, leadID uuid.UUID) (*entity.SalesIntelligence, error) {
	return s.stored, nil
}

// stubUsersRepo is a configurable in-memory UsersRepository.
type stubUsersRepo struct {
	user    *entity.User
	findErr error
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.user, nil
}

type auditorFunc func(ctx context.Context, url string, strategy adapter.Strategy) (*adapter.PageAudit, error)

func (f auditorFunc) Audit(ctx context.Context, url string, strategy adapter.Strategy) (*adapter.PageAudit, error) {
	return f(ctx, url, strategy)
}

type searcherFunc func(ctx context.Context, query, location string) ([]adapter.BusinessHit, error)

func (f searcherFunc) Search(ctx context.Context, query, location string) ([]adapter.BusinessHit, error) {
	return f(ctx, query, location)
}

type narratorFunc func(ctx context.Context, system, prompt string) (string, error)

func (f narratorFunc) Generate(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}
