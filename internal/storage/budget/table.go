package budget

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/storage/pgdb"
)

// IBudgetTable defines the interface for budget storage operations.
type IBudgetTable interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*domain.Budget, error)
	ListAll(ctx context.Context) ([]*domain.Budget, error)
	Upsert(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Budget, error)
	UpdateLastAlert(ctx context.Context, id uuid.UUID, sentAt time.Time) error
}

var _ IBudgetTable = (*Table)(nil)

type Table struct {
	db pgdb.Queryer
}

func NewTable(db pgdb.Queryer) *Table {
	return &Table{db: db}
}

const budgetColumns = `id, user_id, amount::text, last_alert_sent, created_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	var amount string
	err := row.Scan(&b.ID, &b.UserID, &amount, &b.LastAlertSent, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (t *Table) FindByUser(ctx context.Context, userID uuid.UUID) (*domain.Budget, error) {
	row := t.db.QueryRow(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1`, userID)
	b, err := scanBudget(row)
	if err != nil {
		return nil, pgdb.MapError("budget.FindByUser", err)
	}
	return b, nil
}

// ListAll returns every budget; the budget monitor sweeps them all.
func (t *Table) ListAll(ctx context.Context) ([]*domain.Budget, error) {
	rows, err := t.db.Query(ctx, `SELECT `+budgetColumns+` FROM budgets`)
	if err != nil {
		return nil, pgdb.MapError("budget.ListAll", err)
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		b, scanErr := scanBudget(rows)
		if scanErr != nil {
			return nil, pgdb.MapError("budget.ListAll", scanErr)
		}
		budgets = append(budgets, b)
	}
	if err = rows.Err(); err != nil {
		return nil, pgdb.MapError("budget.ListAll", err)
	}
	return budgets, nil
}

// Upsert creates or replaces the user's single budget, keyed on user_id.
func (t *Table) Upsert(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Budget, error) {
	row := t.db.QueryRow(ctx, `
		INSERT INTO budgets (user_id, amount)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET amount = EXCLUDED.amount
		RETURNING `+budgetColumns,
		userID, amount)
	b, err := scanBudget(row)
	if err != nil {
		return nil, pgdb.MapError("budget.Upsert", err)
	}
	return b, nil
}

func (t *Table) UpdateLastAlert(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	tag, err := t.db.Exec(ctx,
		`UPDATE budgets SET last_alert_sent = $1 WHERE id = $2`, sentAt, id)
	if err != nil {
		return pgdb.MapError("budget.UpdateLastAlert", err)
	}
	if tag.RowsAffected() == 0 {
		return pgdb.MapError("budget.UpdateLastAlert", pgx.ErrNoRows)
	}
	return nil
}
