package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// Fixed-width so that text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

type sqliteRunRepository struct {
	db *sql.DB
}

// NewSQLiteRunRepository constructs a repository over an embedded database.
func NewSQLiteRunRepository(db *sql.DB) RunRepository {
	return &sqliteRunRepository{db: db}
}

func (r *sqliteRunRepository) Create(ctx context.Context, run *domain.Run) error {
	summary, err := encodeSummary(run.Summary)
	if err != nil {
		return err
	}
	var summaryText sql.NullString
	if summary != nil {
		summaryText = sql.NullString{String: string(summary), Valid: true}
	}
	const query = `
        INSERT INTO pipeline_runs (id, source_path, status, ticket_count, error, summary, started_at, finished_at)
        VALUES (?,?,?,?,?,?,?,?)`
	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.SourcePath,
		string(run.Status),
		run.TicketCount,
		run.Error,
		summaryText,
		run.StartedAt.UTC().Format(sqliteTimeLayout),
		run.FinishedAt.UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (r *sqliteRunRepository) ListRecent(ctx context.Context, limit int) ([]domain.Run, error) {
	const query = `
        SELECT id, source_path, status, ticket_count, error, summary, started_at, finished_at
        FROM pipeline_runs ORDER BY started_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Run, 0, limit)
	for rows.Next() {
		var (
			run               domain.Run
			status            string
			summary           sql.NullString
			started, finished string
		)
		if err := rows.Scan(&run.ID, &run.SourcePath, &status, &run.TicketCount, &run.Error, &summary, &started, &finished); err != nil {
			return nil, err
		}
		run.Status = domain.RunStatus(status)
		if run.StartedAt, err = time.Parse(sqliteTimeLayout, started); err != nil {
			return nil, fmt.Errorf("run %s started_at: %w", run.ID, err)
		}
		if run.FinishedAt, err = time.Parse(sqliteTimeLayout, finished); err != nil {
			return nil, fmt.Errorf("run %s finished_at: %w", run.ID, err)
		}
		if summary.Valid {
			if run.Summary, err = decodeSummary([]byte(summary.String)); err != nil {
				return nil, err
			}
		}
		result = append(result, run)
	}
	return result, rows.Err()
}
