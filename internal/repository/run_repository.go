package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// RunRepository persists pipeline run history.
type RunRepository interface {
	Create(ctx context.Context, run *domain.Run) error
	ListRecent(ctx context.Context, limit int) ([]domain.Run, error)
}

type runRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository constructs a postgres-backed repository.
func NewRunRepository(pool *pgxpool.Pool) RunRepository {
	return &runRepository{pool: pool}
}

func (r *runRepository) Create(ctx context.Context, run *domain.Run) error {
	summary, err := encodeSummary(run.Summary)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO pipeline_runs (id, source_path, status, ticket_count, error, summary, started_at, finished_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err = r.pool.Exec(ctx, query,
		run.ID,
		run.SourcePath,
		string(run.Status),
		run.TicketCount,
		run.Error,
		summary,
		run.StartedAt,
		run.FinishedAt,
	)
	return err
}

func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]domain.Run, error) {
	const query = `
        SELECT id::text, source_path, status, ticket_count, error, summary, started_at, finished_at
        FROM pipeline_runs ORDER BY started_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Run, 0, limit)
	for rows.Next() {
		var (
			run     domain.Run
			status  string
			summary []byte
		)
		if err := rows.Scan(&run.ID, &run.SourcePath, &status, &run.TicketCount, &run.Error, &summary, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, err
		}
		run.Status = domain.RunStatus(status)
		if run.Summary, err = decodeSummary(summary); err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	return result, rows.Err()
}

func encodeSummary(s *domain.Summary) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode run summary: %w", err)
	}
	return raw, nil
}

func decodeSummary(raw []byte) (*domain.Summary, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var s domain.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode run summary: %w", err)
	}
	return &s, nil
}
