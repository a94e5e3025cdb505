package command

import (
	"context"
	"errors"

	"github.com/holidayhub/directory/internal/repository"
	"github.com/holidayhub/directory/internal/service"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/events"
	"github.com/holidayhub/directory/shared/models"
	"github.com/holidayhub/directory/shared/utils"
	"github.com/sirupsen/logrus"
)

const (
	msgUsernameTaken = "Username already exists"
	msgEmailTaken    = "Email already registered"
	msgDuplicateData = "Duplicate data: username or email already in use"
)

// AccountCommandService writes account state to PostgreSQL and keeps the
// Redis read model up to date.
type AccountCommandService struct {
	writeRepo AccountWriter
	readRepo  AccountReadModel
	publisher EventPublisher
	log       logrus.FieldLogger
}

func NewAccountCommandService(
	writeRepo AccountWriter,
	readRepo AccountReadModel,
	publisher EventPublisher,
	log logrus.FieldLogger,
) *AccountCommandService {
	return &AccountCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
		log:       log.WithField("component", "account-commands"),
	}
}

func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.AccountView, error) {
	method := cmd.Method
	if method == "" {
		method = models.MethodInterface
	}
	if err := service.ValidateNewAccount(cmd.Username, cmd.Email, cmd.Password, method); err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, service.Storage("hash password", err)
	}
	account := &models.Account{
		Username:       cmd.Username,
		Email:          cmd.Email,
		PasswordHash:   passwordHash,
		CreationMethod: method,
	}
	if err := s.writeRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.accountConflict(ctx, err, cmd.Username, cmd.Email)
		}
		return nil, service.Storage("create account", err)
	}

	view := account.ToView()
	s.readRepo.CacheAccountView(ctx, view)
	s.publish(ctx, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:      view.ID,
		Username:       view.Username,
		Email:          view.Email,
		CreationMethod: string(view.CreationMethod),
	})
	return view, nil
}

// accountConflict attributes a unique violation to username or email. The
// constraint name decides when the driver reports it; otherwise the current
// state does, and if both values are taken the conflict stays generic.
func (s *AccountCommandService) accountConflict(ctx context.Context, err error, username, email string) error {
	switch repository.ConstraintName(err) {
	case repository.ConstraintAccountUsername:
		return &service.ConflictError{Field: "username", Message: msgUsernameTaken}
	case repository.ConstraintAccountEmail:
		return &service.ConflictError{Field: "email", Message: msgEmailTaken}
	}

	usernameTaken, uErr := s.writeRepo.UsernameTaken(ctx, username, 0)
	emailTaken, eErr := s.writeRepo.EmailTaken(ctx, email)
	if uErr != nil || eErr != nil {
		s.log.WithError(errors.Join(uErr, eErr)).Warn("could not attribute duplicate account")
		return &service.ConflictError{Message: msgDuplicateData}
	}

	switch {
	case usernameTaken && !emailTaken:
		return &service.ConflictError{Field: "username", Message: msgUsernameTaken}
	case emailTaken && !usernameTaken:
		return &service.ConflictError{Field: "email", Message: msgEmailTaken}
	default:
		return &service.ConflictError{Message: msgDuplicateData}
	}
}

// UpdateUsername pre-checks existence and availability for precise errors;
// the unique constraint still decides races between concurrent renames.
func (s *AccountCommandService) UpdateUsername(ctx context.Context, cmd cqrs.UpdateUsernameCommand) (*models.AccountView, error) {
	username, err := service.ValidateUsername(cmd.Username)
	if err != nil {
		return nil, err
	}

	found, err := s.readRepo.Exists(ctx, cmd.AccountID)
	if err != nil {
		return nil, service.Storage("check account", err)
	}
	if !found {
		return nil, &service.NotFoundError{Entity: "account", ID: cmd.AccountID}
	}

	taken, err := s.writeRepo.UsernameTaken(ctx, username, cmd.AccountID)
	if err != nil {
		return nil, service.Storage("check username", err)
	}
	if taken {
		return nil, &service.ConflictError{Field: "username", Message: msgUsernameTaken}
	}

	view, err := s.writeRepo.UpdateUsername(ctx, cmd.AccountID, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, &service.NotFoundError{Entity: "account", ID: cmd.AccountID}
	case errors.Is(err, repository.ErrDuplicate):
		return nil, &service.ConflictError{Field: "username", Message: msgUsernameTaken}
	case err != nil:
		return nil, service.Storage("update username", err)
	}

	s.readRepo.CacheAccountView(ctx, view)
	s.publish(ctx, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountID: view.ID,
		Username:  view.Username,
		Field:     "username",
	})
	return view, nil
}

func (s *AccountCommandService) UpdateAboutMe(ctx context.Context, cmd cqrs.UpdateAboutMeCommand) (*models.AccountView, error) {
	if err := service.ValidateAboutMe(cmd.AboutMe); err != nil {
		return nil, err
	}
	return s.setAboutMe(ctx, cmd.AccountID, cmd.AboutMe)
}

// DeleteAboutMe resets the bio to the empty string.
func (s *AccountCommandService) DeleteAboutMe(ctx context.Context, cmd cqrs.DeleteAboutMeCommand) (*models.AccountView, error) {
	return s.setAboutMe(ctx, cmd.AccountID, "")
}

func (s *AccountCommandService) setAboutMe(ctx context.Context, id int64, text string) (*models.AccountView, error) {
	view, err := s.writeRepo.UpdateAboutMe(ctx, id, text)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, &service.NotFoundError{Entity: "account", ID: id}
	case err != nil:
		return nil, service.Storage("update about_me", err)
	}

	s.readRepo.CacheAccountView(ctx, view)
	s.publish(ctx, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountID: view.ID,
		Username:  view.Username,
		Field:     "about_me",
	})
	return view, nil
}

// DeleteAccount removes the account; its attendance links go with it.
func (s *AccountCommandService) DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) error {
	err := s.writeRepo.Delete(ctx, cmd.AccountID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &service.NotFoundError{Entity: "account", ID: cmd.AccountID}
	case err != nil:
		return service.Storage("delete account", err)
	}

	s.readRepo.InvalidateAccountView(ctx, cmd.AccountID)
	s.publish(ctx, events.AccountDeleted, events.AccountDeletedEvent{AccountID: cmd.AccountID})
	return nil
}

func (s *AccountCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.log.WithError(err).WithField("event", eventType).Warn("failed to publish event")
	}
}
