package query

import (
	"context"
	"errors"

	"github.com/holidayhub/directory/internal/repository"
	"github.com/holidayhub/directory/internal/service"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/models"
)

type AccountReader interface {
	GetByID(ctx context.Context, id int64) (*models.AccountView, error)
	List(ctx context.Context) ([]models.AccountView, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// AccountQueryService reads account views from the Redis cache (with a Postgres fallback).
type AccountQueryService struct {
	readRepo AccountReader
}

func NewAccountQueryService(readRepo AccountReader) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error) {
	view, err := s.readRepo.GetByID(ctx, q.AccountID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, &service.NotFoundError{Entity: "account", ID: q.AccountID}
	case err != nil:
		return nil, service.Storage("get account", err)
	}
	return view, nil
}

// ListAccounts never returns a nil slice, so an empty directory encodes as [].
func (s *AccountQueryService) ListAccounts(ctx context.Context, _ cqrs.ListAccountsQuery) ([]models.AccountView, error) {
	views, err := s.readRepo.List(ctx)
	if err != nil {
		return nil, service.Storage("list accounts", err)
	}
	if views == nil {
		views = []models.AccountView{}
	}
	return views, nil
}
