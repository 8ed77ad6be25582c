package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/dmitrijs2005/feedbackhub/internal/dbx"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
)

// PostgresDB is what the repository needs from *sql.DB: plain queries plus
// transactions for the team-checked insert.
type PostgresDB interface {
	dbx.DBTX
	dbx.TxBeginner
}

type PostgresRepository struct {
	db PostgresDB
}

func NewPostgresRepository(db PostgresDB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateForTeam locks the employee row for share while inserting, so the
// employee cannot be moved to another manager between check and insert.
func (r *PostgresRepository) CreateForTeam(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var managerID sql.NullString
		err := tx.QueryRowContext(ctx,
			`SELECT manager_id FROM users WHERE id = $1 FOR SHARE`, fb.EmployeeID).Scan(&managerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}
		if !managerID.Valid || managerID.String != fb.ManagerID {
			return common.ErrorNotFound
		}

		query :=
			`INSERT INTO feedback (id, employee_id, manager_id, strengths, improvements, sentiment, acknowledged, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`

		err = tx.QueryRowContext(ctx, query,
			fb.ID, fb.EmployeeID, fb.ManagerID, fb.Strengths, fb.Improvements, string(fb.Sentiment),
			fb.Acknowledged, fb.CreatedAt, fb.UpdatedAt).Scan(&fb.ID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fb, nil
}

const selectFeedback = `SELECT id, employee_id, manager_id, strengths, improvements, sentiment, acknowledged, created_at, updated_at FROM feedback`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	fb, err := scanFeedback(r.db.QueryRowContext(ctx, selectFeedback+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return fb, nil
}

func (r *PostgresRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*models.Feedback, error) {
	return r.list(ctx, "employee_id", employeeID, limit)
}

func (r *PostgresRepository) ListByManager(ctx context.Context, managerID string, limit int) ([]*models.Feedback, error) {
	return r.list(ctx, "manager_id", managerID, limit)
}

// list is only called with fixed column names.
func (r *PostgresRepository) list(ctx context.Context, column, value string, limit int) ([]*models.Feedback, error) {
	query := selectFeedback + ` WHERE ` + column + ` = $1 ORDER BY created_at DESC, id DESC`
	args := []any{value}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Feedback, 0)
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.FeedbackPatch, updatedAt time.Time) error {
	query :=
		`UPDATE feedback
		 SET strengths = COALESCE($2, strengths),
		     improvements = COALESCE($3, improvements),
		     sentiment = COALESCE($4, sentiment),
		     updated_at = $5
		 WHERE id = $1`

	var sentiment sql.NullString
	if patch.Sentiment != nil {
		sentiment = sql.NullString{String: string(*patch.Sentiment), Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query, id, nullable(patch.Strengths), nullable(patch.Improvements), sentiment, updatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Acknowledge(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE feedback SET acknowledged = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFeedback(s scanner) (*models.Feedback, error) {
	fb := &models.Feedback{}
	var sentiment string
	err := s.Scan(&fb.ID, &fb.EmployeeID, &fb.ManagerID, &fb.Strengths, &fb.Improvements,
		&sentiment, &fb.Acknowledged, &fb.CreatedAt, &fb.UpdatedAt)
	if err != nil {
		return nil, err
	}
	fb.Sentiment = models.Sentiment(sentiment)
	return fb, nil
}
