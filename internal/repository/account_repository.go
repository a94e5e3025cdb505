package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/holidayhub/directory/shared/models"
	"github.com/jmoiron/sqlx"
)

const accountsTable = "accounts"

var accountViewColumns = []string{"id", "username", "email", "about_me", "creation_method", "created_at"}

const returningAccountView = "RETURNING id, username, email, about_me, creation_method, created_at"

// AccountWriteRepository handles all state-mutating operations for accounts.
// It operates exclusively against the PostgreSQL write store (source of truth).
type AccountWriteRepository struct {
	db *sqlx.DB
}

func NewAccountWriteRepository(db *sqlx.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

// Create inserts the account and fills in the generated id, about_me and
// created_at in one transaction.
func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) error {
	query, args, err := psql.Insert(accountsTable).
		Columns("username", "email", "password_hash", "creation_method").
		Values(account.Username, account.Email, account.PasswordHash, string(account.CreationMethod)).
		Suffix("RETURNING id, about_me, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create account query: %w", err)
	}

	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query, args...).Scan(&account.ID, &account.AboutMe, &account.CreatedAt)
	})
	return classify(err, "create account")
}

// UpdateUsername renames an account. The unique constraint on username is the
// final arbiter between concurrent renames.
func (r *AccountWriteRepository) UpdateUsername(ctx context.Context, id int64, username string) (*models.AccountView, error) {
	return r.updateReturning(ctx, "update username", sq.Eq{"username": username}, id)
}

func (r *AccountWriteRepository) UpdateAboutMe(ctx context.Context, id int64, aboutMe string) (*models.AccountView, error) {
	return r.updateReturning(ctx, "update about_me", sq.Eq{"about_me": aboutMe}, id)
}

func (r *AccountWriteRepository) updateReturning(ctx context.Context, op string, set sq.Eq, id int64) (*models.AccountView, error) {
	query, args, err := psql.Update(accountsTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix(returningAccountView).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var view models.AccountView
	if err := r.db.GetContext(ctx, &view, query, args...); err != nil {
		return nil, classify(err, op)
	}
	return &view, nil
}

// Delete removes the account; user_holidays rows cascade.
func (r *AccountWriteRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(accountsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete account query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err, "delete account")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UsernameTaken reports whether an account other than excludeID holds
// username. Pass 0 to consider every account.
func (r *AccountWriteRepository) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	return r.taken(ctx, "username", username, excludeID)
}

func (r *AccountWriteRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.taken(ctx, "email", email, 0)
}

func (r *AccountWriteRepository) taken(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	where := sq.And{sq.Eq{column: value}}
	if excludeID > 0 {
		where = append(where, sq.NotEq{"id": excludeID})
	}
	return exists(ctx, r.db, accountsTable, where, "check "+column)
}

// exists runs SELECT EXISTS over table with the given predicate.
func exists(ctx context.Context, db *sqlx.DB, table string, where sq.Sqlizer, op string) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(where).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build %s query: %w", op, err)
	}
	var found bool
	if err := db.GetContext(ctx, &found, query, args...); err != nil {
		return false, classify(err, op)
	}
	return found, nil
}
