package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadscout/api/internal/entity"
)

// ErrPitchNotFound indicates there is no pitch row for the given identifier.
var ErrPitchNotFound = errors.New("pitch not found")

// PitchesRepository describes persistence for outreach pitches.
type PitchesRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Pitch, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.PitchStatus) error
}

// PGXPitchesRepository implements PitchesRepository using pgx.
type PGXPitchesRepository struct {
	pool pgxPool
}

// NewPGXPitchesRepository wires a pgx backed pitches repository.
func NewPGXPitchesRepository(pool *pgxpool.Pool) *PGXPitchesRepository {
	return &PGXPitchesRepository{pool: pool}
}

// GetByID fetches a pitch by identifier.
func (r *PGXPitchesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Pitch, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, lead_id, status, created_at, updated_at FROM pitches WHERE id = $1`, id)

	var (
		pitch  entity.Pitch
		status string
	)
	if err := row.Scan(&pitch.ID, &pitch.LeadID, &status, &pitch.CreatedAt, &pitch.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPitchNotFound
		}
		return nil, fmt.Errorf("query pitch: %w", err)
	}
	pitch.Status = entity.PitchStatus(status)
	return &pitch, nil
}

// UpdateStatus advances the pitch state machine. The previous status is
// part of the WHERE clause so an out-of-order tracking event is dropped.
func (r *PGXPitchesRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.PitchStatus) error {
	if !entity.CanTransitionPitch(from, to) {
		return ErrInvalidTransition
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE pitches SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return fmt.Errorf("update pitch status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPitchNotFound
	}
	return nil
}
