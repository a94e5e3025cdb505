package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/holidayhub/directory/shared/models"
	"github.com/jmoiron/sqlx"
)

var holidayColumns = []string{"id", "start_time", "location", "title"}

// HolidayReadRepository serves holiday reads and the two attendance joins
// straight from PostgreSQL.
type HolidayReadRepository struct {
	db *sqlx.DB
}

func NewHolidayReadRepository(db *sqlx.DB) *HolidayReadRepository {
	return &HolidayReadRepository{db: db}
}

func (r *HolidayReadRepository) GetByID(ctx context.Context, id int64) (*models.Holiday, error) {
	query, args, err := psql.Select(holidayColumns...).
		From(holidaysTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get holiday query: %w", err)
	}

	var holiday models.Holiday
	if err := r.db.GetContext(ctx, &holiday, query, args...); err != nil {
		return nil, classify(err, "get holiday")
	}
	return &holiday, nil
}

// List returns every holiday ordered by start time.
func (r *HolidayReadRepository) List(ctx context.Context) ([]models.Holiday, error) {
	query, args, err := psql.Select(holidayColumns...).
		From(holidaysTable).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list holidays query: %w", err)
	}

	holidays := []models.Holiday{}
	if err := r.db.SelectContext(ctx, &holidays, query, args...); err != nil {
		return nil, classify(err, "list holidays")
	}
	return holidays, nil
}

func (r *HolidayReadRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, holidaysTable, sq.Eq{"id": id}, "check holiday")
}

// ListAttendees returns the accounts registered for a holiday in
// registration order.
func (r *HolidayReadRepository) ListAttendees(ctx context.Context, holidayID int64) ([]models.AccountView, error) {
	query, args, err := psql.Select(
		"a.id", "a.username", "a.email", "a.about_me", "a.creation_method", "a.created_at",
	).
		From("accounts a").
		Join("user_holidays uh ON uh.user_id = a.id").
		Where(sq.Eq{"uh.holiday_id": holidayID}).
		OrderBy("uh.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list attendees query: %w", err)
	}

	views := []models.AccountView{}
	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, classify(err, "list attendees")
	}
	return views, nil
}

// ListByAccount returns the holidays an account attends, earliest first.
func (r *HolidayReadRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Holiday, error) {
	query, args, err := psql.Select("h.id", "h.start_time", "h.location", "h.title").
		From("holidays h").
		Join("user_holidays uh ON uh.holiday_id = h.id").
		Where(sq.Eq{"uh.user_id": accountID}).
		OrderBy("h.start_time ASC", "h.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list account holidays query: %w", err)
	}

	holidays := []models.Holiday{}
	if err := r.db.SelectContext(ctx, &holidays, query, args...); err != nil {
		return nil, classify(err, "list account holidays")
	}
	return holidays, nil
}
