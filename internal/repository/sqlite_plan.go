package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/mintabi/internal/db"
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/google/uuid"
)

// SQLitePlanRepo implements PlanRepo with one row per plan document.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo. conn may be a *sql.DB or a
// transaction from UnitOfWork.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, title, cards_json, days_json, created_at, updated_at`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := nowUTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	cards, err := encodeCards(p.Cards)
	if err != nil {
		return err
	}
	days, err := encodeDays(p.Days)
	if err != nil {
		return err
	}
	query := `INSERT INTO plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		cards,
		days,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Get(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return p, err
}

func (r *SQLitePlanRepo) Update(ctx context.Context, id string, patch domain.PlanPatch) error {
	sets := []string{"updated_at = ?"}
	args := []any{formatTime(nowUTC())}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Cards != nil {
		cards, err := encodeCards(*patch.Cards)
		if err != nil {
			return err
		}
		sets = append(sets, "cards_json = ?")
		args = append(args, cards)
	}
	if patch.Days != nil {
		days, err := encodeDays(*patch.Days)
		if err != nil {
			return err
		}
		sets = append(sets, "days_json = ?")
		args = append(args, days)
	}
	args = append(args, id)

	query := `UPDATE plans SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY updated_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(s scanner) (*domain.Plan, error) {
	var p domain.Plan
	var cardsJSON, daysJSON, createdAtStr, updatedAtStr string

	if err := s.Scan(&p.ID, &p.Title, &cardsJSON, &daysJSON, &createdAtStr, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	if err := json.Unmarshal([]byte(cardsJSON), &p.Cards); err != nil {
		return nil, fmt.Errorf("decoding cards of plan %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(daysJSON), &p.Days); err != nil {
		return nil, fmt.Errorf("decoding days of plan %s: %w", p.ID, err)
	}

	var parseErr error
	p.CreatedAt, parseErr = parseTime(createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = parseTime(updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}
