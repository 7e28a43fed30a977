package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadscout/api/internal/entity"
)

// ErrIntelligenceNotFound indicates no synthesis result exists for the lead.
var ErrIntelligenceNotFound = errors.New("sales intelligence not found")

// IntelligenceRepository persists synthesized sales intelligence. One row
// per lead with replace-in-full upsert semantics.
type IntelligenceRepository interface {
	Upsert(ctx context.Context, intel *entity.SalesIntelligence) error
	GetByLeadID(ctx context.Context, leadID uuid.UUID) (*entity.SalesIntelligence, error)
}

// PGXIntelligenceRepository implements IntelligenceRepository using pgx.
type PGXIntelligenceRepository struct {
	pool pgxPool
}

// NewPGXIntelligenceRepository wires a pgx backed intelligence repository.
func NewPGXIntelligenceRepository(pool *pgxpool.Pool) *PGXIntelligenceRepository {
	return &PGXIntelligenceRepository{pool: pool}
}

// Upsert replaces the stored result for the lead in full. No column keeps
// its old value across a successful run.
func (r *PGXIntelligenceRepository) Upsert(ctx context.Context, intel *entity.SalesIntelligence) error {
	if intel == nil {
		return fmt.Errorf("intelligence payload is nil")
	}
	if intel.LeadID == uuid.Nil {
		return fmt.Errorf("intelligence lead id is required")
	}

	painPointsJSON, err := json.Marshal(intel.PainPoints)
	if err != nil {
		return fmt.Errorf("marshal pain points: %w", err)
	}
	servicesJSON, err := json.Marshal(intel.RecommendedServices)
	if err != nil {
		return fmt.Errorf("marshal recommended services: %w", err)
	}

	query := `
        INSERT INTO sales_intelligence (
            lead_id, summary, pain_points, recommended_services, email_script, dm_script,
            health_score, qualified, disqualified_reason, generated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
        ON CONFLICT (lead_id) DO UPDATE SET
            summary = EXCLUDED.summary,
            pain_points = EXCLUDED.pain_points,
            recommended_services = EXCLUDED.recommended_services,
            email_script = EXCLUDED.email_script,
            dm_script = EXCLUDED.dm_script,
            health_score = EXCLUDED.health_score,
            qualified = EXCLUDED.qualified,
            disqualified_reason = EXCLUDED.disqualified_reason,
            generated_at = NOW()
    `
	_, err = r.pool.Exec(ctx, query,
		intel.LeadID,
		intel.Summary,
		painPointsJSON,
		servicesJSON,
		intel.EmailScript,
		intel.DMScript,
		intel.HealthScore,
		intel.Qualified,
		intel.DisqualifiedReason,
	)
	if err != nil {
		return fmt.Errorf("upsert intelligence: %w", err)
	}
	return nil
}

// GetByLeadID returns the current synthesis result for a lead.
func (r *PGXIntelligenceRepository) GetByLeadID(ctx context.Context, leadID uuid.UUID) (*entity.SalesIntelligence, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT lead_id, summary, pain_points, recommended_services, email_script, dm_script,
               health_score, qualified, disqualified_reason, generated_at
        FROM sales_intelligence
        WHERE lead_id = $1`,
		leadID,
	)

	var (
		intel          entity.SalesIntelligence
		painPointsJSON []byte
		servicesJSON   []byte
		reason         sql.NullString
	)
	err := row.Scan(
		&intel.LeadID,
		&intel.Summary,
		&painPointsJSON,
		&servicesJSON,
		&intel.EmailScript,
		&intel.DMScript,
		&intel.HealthScore,
		&intel.Qualified,
		&reason,
		&intel.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIntelligenceNotFound
		}
		return nil, fmt.Errorf("query intelligence: %w", err)
	}

	intel.DisqualifiedReason = stringPtrOrNil(reason)
	if len(painPointsJSON) > 0 {
		if err := json.Unmarshal(painPointsJSON, &intel.PainPoints); err != nil {
			return nil, fmt.Errorf("unmarshal pain points: %w", err)
		}
	}
	if len(servicesJSON) > 0 {
		if err := json.Unmarshal(servicesJSON, &intel.RecommendedServices); err != nil {
			return nil, fmt.Errorf("unmarshal recommended services: %w", err)
		}
	}

	return &intel, nil
}
