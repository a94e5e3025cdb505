package query

import (
	"context"
	"errors"

	"github.com/holidayhub/directory/internal/repository"
	"github.com/holidayhub/directory/internal/service"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/models"
)

type HolidayReader interface {
	GetByID(ctx context.Context, id int64) (*models.Holiday, error)
	List(ctx context.Context) ([]models.Holiday, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListAttendees(ctx context.Context, holidayID int64) ([]models.AccountView, error)
	ListByAccount(ctx context.Context, accountID int64) ([]models.Holiday, error)
}

type AccountLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// HolidayQueryService reads holidays and both directions of the attendance
// relation from PostgreSQL.
type HolidayQueryService struct {
	readRepo HolidayReader
	accounts AccountLookup
}

func NewHolidayQueryService(readRepo HolidayReader, accounts AccountLookup) *HolidayQueryService {
	return &HolidayQueryService{readRepo: readRepo, accounts: accounts}
}

func (s *HolidayQueryService) GetHoliday(ctx context.Context, q cqrs.GetHolidayQuery) (*models.Holiday, error) {
	holiday, err := s.readRepo.GetByID(ctx, q.HolidayID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, &service.NotFoundError{Entity: "holiday", ID: q.HolidayID}
	case err != nil:
		return nil, service.Storage("get holiday", err)
	}
	return holiday, nil
}

func (s *HolidayQueryService) ListHolidays(ctx context.Context, _ cqrs.ListHolidaysQuery) ([]models.Holiday, error) {
	holidays, err := s.readRepo.List(ctx)
	if err != nil {
		return nil, service.Storage("list holidays", err)
	}
	if holidays == nil {
		holidays = []models.Holiday{}
	}
	return holidays, nil
}

// ListAttendees returns the accounts attending a holiday in registration
// order. An unknown holiday is NotFound, not an empty list.
func (s *HolidayQueryService) ListAttendees(ctx context.Context, q cqrs.ListAttendeesQuery) ([]models.AccountView, error) {
	found, err := s.readRepo.Exists(ctx, q.HolidayID)
	if err != nil {
		return nil, service.Storage("check holiday", err)
	}
	if !found {
		return nil, &service.NotFoundError{Entity: "holiday", ID: q.HolidayID}
	}

	views, err := s.readRepo.ListAttendees(ctx, q.HolidayID)
	if err != nil {
		return nil, service.Storage("list attendees", err)
	}
	if views == nil {
		views = []models.AccountView{}
	}
	return views, nil
}

// ListAccountHolidays returns the holidays an account attends, earliest first.
func (s *HolidayQueryService) ListAccountHolidays(ctx context.Context, q cqrs.ListAccountHolidaysQuery) ([]models.Holiday, error) {
	found, err := s.accounts.Exists(ctx, q.AccountID)
	if err != nil {
		return nil, service.Storage("check account", err)
	}
	if !found {
		return nil, &service.NotFoundError{Entity: "account", ID: q.AccountID}
	}

	holidays, err := s.readRepo.ListByAccount(ctx, q.AccountID)
	if err != nil {
		return nil, service.Storage("list account holidays", err)
	}
	if holidays == nil {
		holidays = []models.Holiday{}
	}
	return holidays, nil
}
