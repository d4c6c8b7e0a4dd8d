package transaction

import (
	"context"
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/storage/pgdb"
)

var _ ITransactionTable = (*Table)(nil)

type Table struct {
	db pgdb.Queryer
}

func NewTable(db pgdb.Queryer) *Table {
	return &Table{db: db}
}

const transactionColumns = `id, user_id, account_id, type, amount::text, category, description,
	date, status, is_recurring, recurring_interval, last_processed, next_recurring_date, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	var amount string
	var interval *string
	err := row.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &tx.Type, &amount, &tx.Category,
		&tx.Description, &tx.Date, &tx.Status, &tx.IsRecurring, &interval,
		&tx.LastProcessed, &tx.NextRecurringDate, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}
	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	if interval != nil {
		iv := domain.RecurringInterval(*interval)
		tx.RecurringInterval = &iv
	}
	return &tx, nil
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	defer rows.Close()
	var result []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func intervalArg(iv *domain.RecurringInterval) *string {
	if iv == nil {
		return nil
	}
	s := string(*iv)
	return &s
}

// FindByID retrieves a transaction scoped to its owning user.
func (t *Table) FindByID(ctx context.Context, id, userID uuid.UUID) (*domain.Transaction, error) {
	row := t.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID)
	tx, err := scanTransaction(row)
	if err != nil {
		return nil, pgdb.MapError("transaction.FindByID", err)
	}
	return tx, nil
}

// FindByIDs fetches the subset of the given ids that belong to the user.
// IDs owned by someone else are silently absent from the result.
func (t *Table) FindByIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]*domain.Transaction, error) {
	rows, err := t.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE id = ANY($1::uuid[]) AND user_id = $2`,
		idStrings(ids), userID)
	if err != nil {
		return nil, pgdb.MapError("transaction.FindByIDs", err)
	}
	result, err := collectTransactions(rows)
	if err != nil {
		return nil, pgdb.MapError("transaction.FindByIDs", err)
	}
	return result, nil
}

// List returns transactions matching the filter, newest date first.
func (t *Table) List(ctx context.Context, filter *TransactionFilter) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{filter.UserID}

	appendArg := func(clause string, arg any) {
		args = append(args, arg)
		query += clause + "$" + strconv.Itoa(len(args))
	}

	if filter.AccountID != nil {
		appendArg(` AND account_id = `, *filter.AccountID)
	}
	if filter.Type != nil {
		appendArg(` AND type = `, string(*filter.Type))
	}
	if filter.MaxCreationTime != nil {
		appendArg(` AND created_at <= `, *filter.MaxCreationTime)
	}

	query += ` ORDER BY date DESC, id DESC`
	if filter.Limit > 0 {
		appendArg(` LIMIT `, filter.Limit+1)
	}
	if filter.Offset > 0 {
		appendArg(` OFFSET `, filter.Offset)
	}

	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pgdb.MapError("transaction.List", err)
	}
	result, err := collectTransactions(rows)
	if err != nil {
		return nil, pgdb.MapError("transaction.List", err)
	}
	return result, nil
}

// ListInRange returns all of a user's transactions with a date in [from, to].
func (t *Table) ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Transaction, error) {
	rows, err := t.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date DESC`,
		userID, from, to)
	if err != nil {
		return nil, pgdb.MapError("transaction.ListInRange", err)
	}
	result, err := collectTransactions(rows)
	if err != nil {
		return nil, pgdb.MapError("transaction.ListInRange", err)
	}
	return result, nil
}

// FindDueRecurring returns every recurring template that is due: completed,
// and either never processed or with a next date at or before now.
func (t *Table) FindDueRecurring(ctx context.Context, now time.Time) ([]*domain.Transaction, error) {
	rows, err := t.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE is_recurring
		   AND status = $1
		   AND (last_processed IS NULL OR next_recurring_date <= $2)`,
		string(domain.TransactionStatusCompleted), now)
	if err != nil {
		return nil, pgdb.MapError("transaction.FindDueRecurring", err)
	}
	result, err := collectTransactions(rows)
	if err != nil {
		return nil, pgdb.MapError("transaction.FindDueRecurring", err)
	}
	return result, nil
}

// SumExpensesInRange aggregates EXPENSE amounts for one account over [from, to].
func (t *Table) SumExpensesInRange(ctx context.Context, userID, accountID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var sum string
	err := t.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::text FROM transactions
		 WHERE user_id = $1 AND account_id = $2 AND type = $3
		   AND date >= $4 AND date <= $5`,
		userID, accountID, string(domain.TransactionTypeExpense), from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, pgdb.MapError("transaction.SumExpensesInRange", err)
	}
	total, err := decimal.NewFromString(sum)
	if err != nil {
		return decimal.Zero, pgdb.MapError("transaction.SumExpensesInRange", err)
	}
	return total, nil
}

// Insert creates a new transaction and returns its generated ID.
func (t *Table) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	status := create.Status
	if status == "" {
		status = domain.TransactionStatusCompleted
	}

	var id uuid.UUID
	err := t.db.QueryRow(ctx, `
		INSERT INTO transactions
			(user_id, account_id, type, amount, category, description, date,
			 status, is_recurring, recurring_interval, next_recurring_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		create.UserID, create.AccountID, string(create.Type), create.Amount,
		create.Category, create.Description, create.Date, string(status),
		create.IsRecurring, intervalArg(create.RecurringInterval), create.NextRecurringDate).Scan(&id)
	if err != nil {
		return uuid.Nil, pgdb.MapError("transaction.Insert", err)
	}
	return id, nil
}

// Update replaces the row's user-editable fields, scoped to the owning user.
func (t *Table) Update(ctx context.Context, id, userID uuid.UUID, update *TransactionUpdate) error {
	tag, err := t.db.Exec(ctx, `
		UPDATE transactions SET
			account_id = $1, type = $2, amount = $3, category = $4,
			description = $5, date = $6, is_recurring = $7,
			recurring_interval = $8, next_recurring_date = $9
		WHERE id = $10 AND user_id = $11`,
		update.AccountID, string(update.Type), update.Amount, update.Category,
		update.Description, update.Date, update.IsRecurring,
		intervalArg(update.RecurringInterval), update.NextRecurringDate,
		id, userID)
	if err != nil {
		return pgdb.MapError("transaction.Update", err)
	}
	if tag.RowsAffected() == 0 {
		return pgdb.MapError("transaction.Update", pgx.ErrNoRows)
	}
	return nil
}

// DeleteByIDs removes the user's rows among ids and reports how many went.
func (t *Table) DeleteByIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error) {
	tag, err := t.db.Exec(ctx,
		`DELETE FROM transactions WHERE id = ANY($1::uuid[]) AND user_id = $2`,
		idStrings(ids), userID)
	if err != nil {
		return 0, pgdb.MapError("transaction.DeleteByIDs", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateRecurringState advances a template after a processed occurrence.
func (t *Table) UpdateRecurringState(ctx context.Context, id uuid.UUID, lastProcessed, nextRecurringDate time.Time) error {
	tag, err := t.db.Exec(ctx,
		`UPDATE transactions SET last_processed = $1, next_recurring_date = $2 WHERE id = $3`,
		lastProcessed, nextRecurringDate, id)
	if err != nil {
		return pgdb.MapError("transaction.UpdateRecurringState", err)
	}
	if tag.RowsAffected() == 0 {
		return pgdb.MapError("transaction.UpdateRecurringState", pgx.ErrNoRows)
	}
	return nil
}
