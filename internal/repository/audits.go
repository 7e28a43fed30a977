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

// ErrAuditNotFound indicates there is no audit row for the given identifier.
var ErrAuditNotFound = errors.New("audit not found")

// AuditsRepository describes persistence for audit runs. Runs are
// append-only: completing or failing a run is the last write it receives.
type AuditsRepository interface {
	Create(ctx context.Context, audit *entity.Audit) error
	MarkRunning(ctx context.Context, id uuid.UUID) error
	Complete(ctx context.Context, audit *entity.Audit) error
	Fail(ctx context.Context, id uuid.UUID, message string) error
	LatestCompletedForLead(ctx context.Context, leadID uuid.UUID) (*entity.Audit, error)
}

// PGXAuditsRepository implements AuditsRepository using pgx.
type PGXAuditsRepository struct {
	pool pgxPool
}

// NewPGXAuditsRepository wires a pgx backed audits repository.
func NewPGXAuditsRepository(pool *pgxpool.Pool) *PGXAuditsRepository {
	return &PGXAuditsRepository{pool: pool}
}

// Create inserts a new pending audit run.
func (r *PGXAuditsRepository) Create(ctx context.Context, audit *entity.Audit) error {
	if audit == nil {
		return fmt.Errorf("audit payload is nil")
	}
	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	if audit.Status == "" {
		audit.Status = entity.AuditPending
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO audits (id, lead_id, url, business_name, status) VALUES ($1, $2, $3, $4, $5)`,
		audit.ID, audit.LeadID, audit.URL, audit.BusinessName, string(audit.Status),
	)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

// MarkRunning moves a pending audit into running.
func (r *PGXAuditsRepository) MarkRunning(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE audits SET status = $1 WHERE id = $2 AND status = $3`,
		string(entity.AuditRunning), id, string(entity.AuditPending),
	)
	if err != nil {
		return fmt.Errorf("mark audit running: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAuditNotFound
	}
	return nil
}

// Complete writes the terminal successful state: all five category scores,
// the issue and recommendation lists, the summary and the overall score.
func (r *PGXAuditsRepository) Complete(ctx context.Context, audit *entity.Audit) error {
	if audit == nil {
		return fmt.Errorf("audit payload is nil")
	}
	if audit.Scores == nil || audit.OverallScore == nil {
		return fmt.Errorf("completed audit requires full score set")
	}

	scoresJSON, err := json.Marshal(audit.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	issuesJSON, err := json.Marshal(sliceOrEmptyIssues(audit.Issues))
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	recsJSON, err := json.Marshal(sliceOrEmptyRecommendations(audit.Recommendations))
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
        UPDATE audits SET
            status = $1,
            scores = $2,
            overall_score = $3,
            issues = $4,
            recommendations = $5,
            summary = $6,
            completed_at = NOW()
        WHERE id = $7 AND status = $8`,
		string(entity.AuditCompleted),
		scoresJSON,
		*audit.OverallScore,
		issuesJSON,
		recsJSON,
		audit.Summary,
		audit.ID,
		string(entity.AuditRunning),
	)
	if err != nil {
		return fmt.Errorf("complete audit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAuditNotFound
	}
	return nil
}

// Fail writes the terminal failed state with the captured error message.
// No scores are persisted on failure.
func (r *PGXAuditsRepository) Fail(ctx context.Context, id uuid.UUID, message string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE audits SET status = $1, error_message = $2, completed_at = NOW() WHERE id = $3 AND status IN ($4, $5)`,
		string(entity.AuditFailed), message, id, string(entity.AuditPending), string(entity.AuditRunning),
	)
	if err != nil {
		return fmt.Errorf("fail audit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAuditNotFound
	}
	return nil
}

// LatestCompletedForLead returns the most recent completed audit for a
// lead, or ErrAuditNotFound when none exists.
func (r *PGXAuditsRepository) LatestCompletedForLead(ctx context.Context, leadID uuid.UUID) (*entity.Audit, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, lead_id, url, business_name, status, scores, overall_score, issues, recommendations, summary, error_message, created_at, completed_at
        FROM audits
        WHERE lead_id = $1 AND status = $2
        ORDER BY completed_at DESC
        LIMIT 1`,
		leadID, string(entity.AuditCompleted),
	)

	audit, err := scanAudit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAuditNotFound
		}
		return nil, fmt.Errorf("query latest audit: %w", err)
	}
	return audit, nil
}

func scanAudit(row pgx.Row) (*entity.Audit, error) {
	var (
		audit        entity.Audit
		leadID       *uuid.UUID
		businessName sql.NullString
		status       string
		scoresJSON   []byte
		overall      sql.NullInt64
		issuesJSON   []byte
		recsJSON     []byte
		summary      sql.NullString
		errMessage   sql.NullString
		completedAt  sql.NullTime
	)

	err := row.Scan(
		&audit.ID,
		&leadID,
		&audit.URL,
		&businessName,
		&status,
		&scoresJSON,
		&overall,
		&issuesJSON,
		&recsJSON,
		&summary,
		&errMessage,
		&audit.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	audit.LeadID = leadID
	audit.BusinessName = businessName.String
	audit.Status = entity.AuditStatus(status)
	audit.Summary = summary.String
	audit.ErrorMessage = stringPtrOrNil(errMessage)
	if overall.Valid {
		score := int(overall.Int64)
		audit.OverallScore = &score
	}
	if completedAt.Valid {
		audit.CompletedAt = &completedAt.Time
	}
	if len(scoresJSON) > 0 {
		var scores entity.CategoryScores
		if err := json.Unmarshal(scoresJSON, &scores); err != nil {
			return nil, fmt.Errorf("unmarshal scores: %w", err)
		}
		audit.Scores = &scores
	}
	if len(issuesJSON) > 0 {
		if err := json.Unmarshal(issuesJSON, &audit.Issues); err != nil {
			return nil, fmt.Errorf("unmarshal issues: %w", err)
		}
	}
	if len(recsJSON) > 0 {
		if err := json.Unmarshal(recsJSON, &audit.Recommendations); err != nil {
			return nil, fmt.Errorf("unmarshal recommendations: %w", err)
		}
	}

	return &audit, nil
}

func sliceOrEmptyIssues(issues []entity.Issue) []entity.Issue {
	if issues == nil {
		return []entity.Issue{}
	}
	return issues
}

func sliceOrEmptyRecommendations(recs []entity.Recommendation) []entity.Recommendation {
	if recs == nil {
		return []entity.Recommendation{}
	}
	return recs
}
