package command

import (
	"context"
	"errors"
	"strings"

	"github.com/holidayhub/directory/internal/repository"
	"github.com/holidayhub/directory/internal/service"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/events"
	"github.com/holidayhub/directory/shared/models"
	"github.com/sirupsen/logrus"
)

// HolidayCommandService writes holidays and attendance links.
type HolidayCommandService struct {
	writeRepo HolidayWriter
	holidays  HolidayLookup
	accounts  AccountReadModel
	publisher EventPublisher
	log       logrus.FieldLogger
}

func NewHolidayCommandService(
	writeRepo HolidayWriter,
	holidays HolidayLookup,
	accounts AccountReadModel,
	publisher EventPublisher,
	log logrus.FieldLogger,
) *HolidayCommandService {
	return &HolidayCommandService{
		writeRepo: writeRepo,
		holidays:  holidays,
		accounts:  accounts,
		publisher: publisher,
		log:       log.WithField("component", "holiday-commands"),
	}
}

func (s *HolidayCommandService) CreateHoliday(ctx context.Context, cmd cqrs.CreateHolidayCommand) (*models.Holiday, error) {
	startTime, err := service.ValidateNewHoliday(cmd.StartTime, cmd.Location, cmd.Title)
	if err != nil {
		return nil, err
	}

	holiday := &models.Holiday{
		StartTime: startTime,
		Location:  strings.TrimSpace(cmd.Location),
		Title:     strings.TrimSpace(cmd.Title),
	}
	if err := s.writeRepo.Create(ctx, holiday); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &service.ConflictError{Field: "title", Message: "A holiday with this title already exists"}
		}
		return nil, service.Storage("create holiday", err)
	}

	s.publish(ctx, events.HolidayCreated, events.HolidayCreatedEvent{
		HolidayID: holiday.ID,
		Title:     holiday.Title,
		StartTime: holiday.StartTime,
	})
	return holiday, nil
}

// DeleteHoliday removes the holiday and every attendance link to it.
func (s *HolidayCommandService) DeleteHoliday(ctx context.Context, cmd cqrs.DeleteHolidayCommand) error {
	err := s.writeRepo.Delete(ctx, cmd.HolidayID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &service.NotFoundError{Entity: "holiday", ID: cmd.HolidayID}
	case err != nil:
		return service.Storage("delete holiday", err)
	}

	s.publish(ctx, events.HolidayDeleted, events.HolidayDeletedEvent{HolidayID: cmd.HolidayID})
	return nil
}

// RegisterAttendance links an account to a holiday. The account is checked
// before the holiday so a request naming two missing ids reports the account.
func (s *HolidayCommandService) RegisterAttendance(ctx context.Context, cmd cqrs.RegisterAttendanceCommand) (*models.Attendance, error) {
	found, err := s.accounts.Exists(ctx, cmd.AccountID)
	if err != nil {
		return nil, service.Storage("check account", err)
	}
	if !found {
		return nil, &service.NotFoundError{Entity: "account", ID: cmd.AccountID}
	}

	found, err = s.holidays.Exists(ctx, cmd.HolidayID)
	if err != nil {
		return nil, service.Storage("check holiday", err)
	}
	if !found {
		return nil, &service.NotFoundError{Entity: "holiday", ID: cmd.HolidayID}
	}

	attendance, err := s.writeRepo.AddAttendee(ctx, cmd.AccountID, cmd.HolidayID)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, &service.ConflictError{Field: "attendance", Message: "Account is already registered for this holiday"}
	case errors.Is(err, repository.ErrForeignKey):
		// deleted between the checks and the insert
		if repository.ConstraintName(err) == repository.ConstraintAttendanceEvent {
			return nil, &service.NotFoundError{Entity: "holiday", ID: cmd.HolidayID}
		}
		return nil, &service.NotFoundError{Entity: "account", ID: cmd.AccountID}
	case err != nil:
		return nil, service.Storage("register attendance", err)
	}

	s.publish(ctx, events.HolidayAttended, events.HolidayAttendedEvent{
		HolidayID: cmd.HolidayID,
		AccountID: cmd.AccountID,
	})
	return attendance, nil
}

func (s *HolidayCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.log.WithError(err).WithField("event", eventType).Warn("failed to publish event")
	}
}
