package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/storage/pgdb"
)

var _ IAccountTable = (*Table)(nil)

type Table struct {
	db pgdb.Queryer
}

func NewTable(db pgdb.Queryer) *Table {
	return &Table{db: db}
}

const accountColumns = `id, user_id, name, type, balance::text, is_default, created_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	var balance string
	err := row.Scan(&acc.ID, &acc.UserID, &acc.Name, &acc.Type, &balance, &acc.IsDefault, &acc.CreatedAt)
	if err != nil {
		return nil, err
	}
	acc.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// FindByID retrieves an account scoped to its owning user.
func (t *Table) FindByID(ctx context.Context, id, userID uuid.UUID) (*domain.Account, error) {
	row := t.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 AND user_id = $2`,
		id, userID)
	acc, err := scanAccount(row)
	if err != nil {
		return nil, pgdb.MapError("account.FindByID", err)
	}
	return acc, nil
}

// FindDefault returns the user's default account.
func (t *Table) FindDefault(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	row := t.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 AND is_default`,
		userID)
	acc, err := scanAccount(row)
	if err != nil {
		return nil, pgdb.MapError("account.FindDefault", err)
	}
	return acc, nil
}

// List returns all of the user's accounts, newest first, each carrying its
// transaction count.
func (t *Table) List(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	rows, err := t.db.Query(ctx, `
		SELECT a.id, a.user_id, a.name, a.type, a.balance::text, a.is_default, a.created_at,
		       COUNT(t.id)
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		WHERE a.user_id = $1
		GROUP BY a.id
		ORDER BY a.created_at DESC`,
		userID)
	if err != nil {
		return nil, pgdb.MapError("account.List", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var acc domain.Account
		var balance string
		err = rows.Scan(&acc.ID, &acc.UserID, &acc.Name, &acc.Type, &balance,
			&acc.IsDefault, &acc.CreatedAt, &acc.TransactionCount)
		if err != nil {
			return nil, pgdb.MapError("account.List", err)
		}
		acc.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, pgdb.MapError("account.List", err)
		}
		accounts = append(accounts, &acc)
	}
	if err = rows.Err(); err != nil {
		return nil, pgdb.MapError("account.List", err)
	}
	return accounts, nil
}

func (t *Table) CountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := t.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, pgdb.MapError("account.CountForUser", err)
	}
	return count, nil
}

// Insert creates a new account and returns its generated ID.
func (t *Table) Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	var id uuid.UUID
	err := t.db.QueryRow(ctx, `
		INSERT INTO accounts (user_id, name, type, balance, is_default)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		create.UserID, create.Name, string(create.Type), create.Balance, create.IsDefault).Scan(&id)
	if err != nil {
		return uuid.Nil, pgdb.MapError("account.Insert", err)
	}
	return id, nil
}

// IncrementBalance applies a signed delta with a single atomic statement.
// The row-level update serializes concurrent mutations of the same account
// inside the store instead of read-modify-write in application code.
func (t *Table) IncrementBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	tag, err := t.db.Exec(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2`,
		delta, id)
	if err != nil {
		return pgdb.MapError("account.IncrementBalance", err)
	}
	if tag.RowsAffected() == 0 {
		return pgdb.MapError("account.IncrementBalance", pgx.ErrNoRows)
	}
	return nil
}

func (t *Table) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	_, err := t.db.Exec(ctx,
		`UPDATE accounts SET is_default = FALSE WHERE user_id = $1 AND is_default`,
		userID)
	if err != nil {
		return pgdb.MapError("account.ClearDefault", err)
	}
	return nil
}

func (t *Table) SetDefault(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := t.db.Exec(ctx,
		`UPDATE accounts SET is_default = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return pgdb.MapError("account.SetDefault", err)
	}
	if tag.RowsAffected() == 0 {
		return pgdb.MapError("account.SetDefault", pgx.ErrNoRows)
	}
	return nil
}
