package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id              BIGSERIAL    PRIMARY KEY,
		username        VARCHAR(20)  NOT NULL,
		email           VARCHAR(255) NOT NULL,
		password_hash   VARCHAR(255) NOT NULL,
		about_me        TEXT         NOT NULL DEFAULT '',
		creation_method VARCHAR(10)  NOT NULL DEFAULT 'interface',
		created_at      TIMESTAMPTZ  NOT NULL DEFAULT now(),
		CONSTRAINT accounts_username_key UNIQUE (username),
		CONSTRAINT accounts_email_key UNIQUE (email),
		CONSTRAINT accounts_creation_method_check CHECK (creation_method IN ('rest', 'soap', 'interface'))
	)`,
	`CREATE TABLE IF NOT EXISTS holidays (
		id         BIGSERIAL    PRIMARY KEY,
		start_time TIMESTAMPTZ  NOT NULL,
		location   VARCHAR(255) NOT NULL,
		title      VARCHAR(100) NOT NULL,
		CONSTRAINT holidays_title_key UNIQUE (title)
	)`,
	`CREATE TABLE IF NOT EXISTS user_holidays (
		id         BIGSERIAL   PRIMARY KEY,
		user_id    BIGINT      NOT NULL,
		holiday_id BIGINT      NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT user_holidays_user_id_fkey FOREIGN KEY (user_id) REFERENCES accounts (id) ON DELETE CASCADE,
		CONSTRAINT user_holidays_holiday_id_fkey FOREIGN KEY (holiday_id) REFERENCES holidays (id) ON DELETE CASCADE,
		CONSTRAINT user_holidays_pair_key UNIQUE (user_id, holiday_id)
	)`,
	`CREATE INDEX IF NOT EXISTS user_holidays_holiday_id_idx ON user_holidays (holiday_id)`,
	`CREATE INDEX IF NOT EXISTS holidays_start_time_idx ON holidays (start_time)`,
}

// CreateSchema idempotently creates the accounts, holidays and user_holidays
// relations with their constraints. It is safe to call on every startup.
func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	return withTx(ctx, db, func(tx *sqlx.Tx) error {
		for i, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
