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

var (
	// ErrLeadNotFound indicates there is no lead row for the given identifier.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrInvalidTransition indicates a status write that the enrichment
	// state machine does not allow.
	ErrInvalidTransition = errors.New("invalid enrichment status transition")
)

// LeadsRepository describes persistence operations for leads and their
// enrichment payload.
type LeadsRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	UpsertFromSearch(ctx context.Context, lead *entity.Lead) error
	SetEnrichmentStatus(ctx context.Context, id uuid.UUID, from, to entity.EnrichmentStatus) error
	SaveEnrichment(ctx context.Context, id uuid.UUID, enrichment *entity.Enrichment) error
	ReplaceDecisionMakers(ctx context.Context, leadID uuid.UUID, makers []entity.DecisionMaker) error
	ListDecisionMakers(ctx context.Context, leadID uuid.UUID) ([]entity.DecisionMaker, error)
}

// PGXLeadsRepository implements LeadsRepository using pgx.
type PGXLeadsRepository struct {
	pool pgxPool
}

// NewPGXLeadsRepository wires a pgx backed leads repository.
func NewPGXLeadsRepository(pool *pgxpool.Pool) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

var _ pgxPool = (*pgxpool.Pool)(nil)

const leadColumns = `
	id,
	name,
	category,
	phone,
	email,
	address,
	website,
	rating,
	reviews,
	enrichment_status,
	enrichment,
	created_at,
	updated_at
`

// GetByID fetches a lead together with its current enrichment payload.
func (r *PGXLeadsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("query lead by id: %w", err)
	}
	return lead, nil
}

// UpsertFromSearch inserts or refreshes a lead discovered via business
// search, keyed by (name, website). Discovery never touches enrichment
// state of an existing row.
func (r *PGXLeadsRepository) UpsertFromSearch(ctx context.Context, lead *entity.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead payload is nil")
	}
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.EnrichmentStatus == "" {
		lead.EnrichmentStatus = entity.EnrichmentPending
	}

	query := `
        INSERT INTO leads (
            id, name, category, phone, email, address, website, rating, reviews, enrichment_status, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
        ON CONFLICT (name, website) DO UPDATE SET
            category = COALESCE(EXCLUDED.category, leads.category),
            phone = COALESCE(EXCLUDED.phone, leads.phone),
            address = COALESCE(EXCLUDED.address, leads.address),
            rating = COALESCE(EXCLUDED.rating, leads.rating),
            reviews = COALESCE(EXCLUDED.reviews, leads.reviews),
            updated_at = NOW()
    `
	_, err := r.pool.Exec(ctx, query,
		lead.ID,
		lead.Name,
		lead.Category,
		lead.Phone,
		lead.Email,
		lead.Address,
		lead.Website,
		lead.Rating,
		lead.Reviews,
		string(lead.EnrichmentStatus),
	)
	if err != nil {
		return fmt.Errorf("upsert lead: %w", err)
	}
	return nil
}

// SetEnrichmentStatus advances the enrichment state machine. The previous
// status is part of the WHERE clause so a write racing a concurrent run,
// or one that skips a state, is rejected rather than applied.
func (r *PGXLeadsRepository) SetEnrichmentStatus(ctx context.Context, id uuid.UUID, from, to entity.EnrichmentStatus) error {
	if !entity.CanTransitionEnrichment(from, to) {
		return ErrInvalidTransition
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE leads SET enrichment_status = $1, updated_at = NOW() WHERE id = $2 AND enrichment_status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return fmt.Errorf("update enrichment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// SaveEnrichment writes the full enrichment payload and marks the lead
// completed in a single statement, replacing any payload from a prior run.
func (r *PGXLeadsRepository) SaveEnrichment(ctx context.Context, id uuid.UUID, enrichment *entity.Enrichment) error {
	if enrichment == nil {
		return fmt.Errorf("enrichment payload is nil")
	}

	payload, err := json.Marshal(enrichment)
	if err != nil {
		return fmt.Errorf("marshal enrichment: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE leads SET enrichment = $1, enrichment_status = $2, updated_at = NOW() WHERE id = $3 AND enrichment_status = $4`,
		payload, string(entity.EnrichmentCompleted), id, string(entity.EnrichmentEnriching),
	)
	if err != nil {
		return fmt.Errorf("save enrichment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// ReplaceDecisionMakers swaps the stored roster for the lead. Delete and
// insert run in one transaction so a re-run never leaves duplicates.
func (r *PGXLeadsRepository) ReplaceDecisionMakers(ctx context.Context, leadID uuid.UUID, makers []entity.DecisionMaker) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin decision makers tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM decision_makers WHERE lead_id = $1`, leadID); err != nil {
		return fmt.Errorf("delete decision makers: %w", err)
	}

	for _, m := range makers {
		id := m.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO decision_makers (id, lead_id, name, role, profile_url) VALUES ($1, $2, $3, $4, $5)`,
			id, leadID, m.Name, m.Role, m.ProfileURL,
		)
		if err != nil {
			return fmt.Errorf("insert decision maker: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit decision makers: %w", err)
	}
	return nil
}

// ListDecisionMakers returns the current roster for a lead.
func (r *PGXLeadsRepository) ListDecisionMakers(ctx context.Context, leadID uuid.UUID) ([]entity.DecisionMaker, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, lead_id, name, role, profile_url, created_at FROM decision_makers WHERE lead_id = $1 ORDER BY created_at, name`,
		leadID,
	)
	if err != nil {
		return nil, fmt.Errorf("query decision makers: %w", err)
	}
	defer rows.Close()

	var makers []entity.DecisionMaker
	for rows.Next() {
		var (
			m    entity.DecisionMaker
			role sql.NullString
			url  sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.LeadID, &m.Name, &role, &url, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan decision maker: %w", err)
		}
		m.Role = stringPtrOrNil(role)
		m.ProfileURL = stringPtrOrNil(url)
		makers = append(makers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decision makers: %w", err)
	}
	return makers, nil
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var (
		lead       entity.Lead
		category   sql.NullString
		phone      sql.NullString
		email      sql.NullString
		address    sql.NullString
		website    sql.NullString
		rating     sql.NullFloat64
		reviews    sql.NullInt64
		status     string
		enrichment []byte
	)

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&category,
		&phone,
		&email,
		&address,
		&website,
		&rating,
		&reviews,
		&status,
		&enrichment,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Category = stringPtrOrNil(category)
	lead.Phone = stringPtrOrNil(phone)
	lead.Email = stringPtrOrNil(email)
	lead.Address = stringPtrOrNil(address)
	lead.Website = stringPtrOrNil(website)
	if rating.Valid {
		lead.Rating = &rating.Float64
	}
	if reviews.Valid {
		count := int(reviews.Int64)
		lead.Reviews = &count
	}
	lead.EnrichmentStatus = entity.EnrichmentStatus(status)

	if len(enrichment) > 0 {
		var payload entity.Enrichment
		if err := json.Unmarshal(enrichment, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal enrichment payload: %w", err)
		}
		lead.Enrichment = &payload
	}

	return &lead, nil
}

func stringPtrOrNil(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
