package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/holidayhub/directory/shared/models"
	"github.com/jmoiron/sqlx"
)

const (
	holidaysTable   = "holidays"
	attendanceTable = "user_holidays"
)

// HolidayWriteRepository handles all state-mutating operations for holidays
// and attendance links.
type HolidayWriteRepository struct {
	db *sqlx.DB
}

func NewHolidayWriteRepository(db *sqlx.DB) *HolidayWriteRepository {
	return &HolidayWriteRepository{db: db}
}

func (r *HolidayWriteRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	query, args, err := psql.Insert(holidaysTable).
		Columns("start_time", "location", "title").
		Values(holiday.StartTime, holiday.Location, holiday.Title).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create holiday query: %w", err)
	}

	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, query, args...).Scan(&holiday.ID)
	})
	return classify(err, "create holiday")
}

// Delete removes the holiday; user_holidays rows cascade.
func (r *HolidayWriteRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete(holidaysTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete holiday query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err, "delete holiday")
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

// AddAttendee inserts the link row. A repeated pair fails with a
// ConstraintError on ConstraintAttendancePair.
func (r *HolidayWriteRepository) AddAttendee(ctx context.Context, accountID, holidayID int64) (*models.Attendance, error) {
	query, args, err := psql.Insert(attendanceTable).
		Columns("user_id", "holiday_id").
		Values(accountID, holidayID).
		Suffix("RETURNING user_id, holiday_id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build add attendee query: %w", err)
	}

	var link models.Attendance
	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &link, query, args...)
	})
	if err != nil {
		return nil, classify(err, "add attendee")
	}
	return &link, nil
}
