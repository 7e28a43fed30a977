package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/leadscout/api/internal/entity"
	"github.com/leadscout/api/internal/repository"
)

// PitchService advances the outreach state machine for pitches. The
// transitions themselves are driven from outside the pipelines (view
// tracking, user action) but every write still goes through the machine.
type PitchService struct {
	pitches repository.PitchesRepository
}

// NewPitchService wires a pitch service.
func NewPitchService(pitches repository.PitchesRepository) *PitchService {
	return &PitchService{pitches: pitches}
}

// Advance moves a pitch to the requested status if the machine allows it.
func (s *PitchService) Advance(ctx context.Context, id uuid.UUID, to entity.PitchStatus) (*entity.Pitch, error) {
	pitch, err := s.pitches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.pitches.UpdateStatus(ctx, id, pitch.Status, to); err != nil {
		return nil, err
	}

	pitch.Status = to
	return pitch, nil
}
