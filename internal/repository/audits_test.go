package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leadscout/api/internal/entity"
)

func TestPGXAuditsRepository_Create(t *testing.T) {
	var execArgs []any
	repo := &PGXAuditsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			execArgs = args
			return pgconn.NewCommandTag("INSERT 1"), nil
		},
	}}

	audit := &entity.Audit{URL: "https://kopisejahtera.example"}
	if err := repo.Create(context.Background(), audit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if audit.ID == uuid.Nil {
		t.Fatalf("expected an id to be assigned")
	}
	if audit.Status != entity.AuditPending {
		t.Fatalf("expected pending default status, got %s", audit.Status)
	}
	if execArgs[4] != "pending" {
		t.Fatalf("expected status arg, got %v", execArgs)
	}
}

func TestPGXAuditsRepository_Complete(t *testing.T) {
	repo := &PGXAuditsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}}

	// Completion without the full score set is a programming error.
	if err := repo.Complete(context.Background(), &entity.Audit{ID: uuid.New()}); err == nil {
		t.Fatalf("expected error for audit without scores")
	}

	overall := 72
	audit := &entity.Audit{
		ID:           uuid.New(),
		Scores:       &entity.CategoryScores{Performance: 70, SEO: 75, Mobile: 68, Accessibility: 74, BestPractices: 73},
		OverallScore: &overall,
		Summary:      "mixed",
	}
	if err := repo.Complete(context.Background(), audit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.pool = &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	if err := repo.Complete(context.Background(), audit); !errors.Is(err, ErrAuditNotFound) {
		t.Fatalf("expected ErrAuditNotFound for guard miss, got %v", err)
	}
}

func TestPGXAuditsRepository_Fail(t *testing.T) {
	var execArgs []any
	repo := &PGXAuditsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			execArgs = args
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}}

	if err := repo.Fail(context.Background(), uuid.New(), "desktop fetch timed out"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if execArgs[1] != "desktop fetch timed out" {
		t.Fatalf("expected error message arg, got %v", execArgs)
	}
}

func TestPGXAuditsRepository_LatestCompletedForLead(t *testing.T) {
	auditID := uuid.New()
	leadID := uuid.New()

	repo := &PGXAuditsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = auditID
				*dest[1].(**uuid.UUID) = &leadID
				*dest[2].(*string) = "https://kopisejahtera.example"
				*dest[4].(*string) = "completed"
				*dest[5].(*[]byte) = []byte(`{"performance":70,"seo":75,"mobile":68,"accessibility":74,"best_practices":73}`)
				return nil
			}}
		},
	}}

	audit, err := repo.LatestCompletedForLead(context.Background(), leadID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if audit.ID != auditID || audit.Status != entity.AuditCompleted {
		t.Fatalf("unexpected audit: %+v", audit)
	}
	if audit.Scores == nil || audit.Scores.Performance != 70 {
		t.Fatalf("expected decoded scores: %+v", audit.Scores)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	if _, err := repo.LatestCompletedForLead(context.Background(), leadID); !errors.Is(err, ErrAuditNotFound) {
		t.Fatalf("expected ErrAuditNotFound, got %v", err)
	}
}
