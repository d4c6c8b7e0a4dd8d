package user

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/storage/pgdb"
)

// IUserTable defines the interface for the mirrored identity records.
type IUserTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}

var _ IUserTable = (*Table)(nil)

type Table struct {
	db pgdb.Queryer
}

func NewTable(db pgdb.Queryer) *Table {
	return &Table{db: db}
}

func (t *Table) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	err := t.db.QueryRow(ctx,
		`SELECT id, email, name FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Name)
	if err != nil {
		return nil, pgdb.MapError("user.FindByID", err)
	}
	return &u, nil
}

// ListAll returns every known user; the report job iterates them.
func (t *Table) ListAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := t.db.Query(ctx, `SELECT id, email, name FROM users ORDER BY id`)
	if err != nil {
		return nil, pgdb.MapError("user.ListAll", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if scanErr := rows.Scan(&u.ID, &u.Email, &u.Name); scanErr != nil {
			return nil, pgdb.MapError("user.ListAll", scanErr)
		}
		users = append(users, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, pgdb.MapError("user.ListAll", err)
	}
	return users, nil
}

// Upsert mirrors a record from the identity provider.
func (t *Table) Upsert(ctx context.Context, user *domain.User) error {
	_, err := t.db.Exec(ctx, `
		INSERT INTO users (id, email, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name`,
		user.ID, user.Email, user.Name)
	if err != nil {
		return pgdb.MapError("user.Upsert", err)
	}
	return nil
}
