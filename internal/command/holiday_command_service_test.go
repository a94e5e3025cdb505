package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/holidayhub/directory/internal/repository"
	"github.com/holidayhub/directory/internal/service"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/events"
	"github.com/holidayhub/directory/shared/models"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHolidayService(w *fakeHolidayWriter, holidays map[int64]bool, accounts map[int64]bool, p *fakePublisher) *HolidayCommandService {
	log, _ := logtest.NewNullLogger()
	return NewHolidayCommandService(w, &fakeHolidayLookup{existing: holidays}, &fakeReadModel{existing: accounts}, p, log)
}

func TestCreateHoliday(t *testing.T) {
	writer := &fakeHolidayWriter{
		createFn: func(_ context.Context, h *models.Holiday) error {
			if h.Title == "Taken" {
				return &repository.ConstraintError{Kind: repository.ErrDuplicate, Constraint: repository.ConstraintHolidayTitle}
			}
			h.ID = 4
			return nil
		},
	}
	pub := &fakePublisher{}
	svc := newHolidayService(writer, nil, nil, pub)
	ctx := context.Background()

	holiday, err := svc.CreateHoliday(ctx, cqrs.CreateHolidayCommand{
		StartTime: "2024-12-24T18:00:00Z",
		Location:  " Oslo ",
		Title:     "Christmas Eve",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), holiday.ID)
	assert.Equal(t, "Oslo", holiday.Location)
	assert.True(t, holiday.StartTime.Equal(time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{events.HolidayCreated}, pub.types())

	_, err = svc.CreateHoliday(ctx, cqrs.CreateHolidayCommand{StartTime: "2024-12-24T18:00:00Z", Location: "Oslo", Title: "Taken"})
	var cerr *service.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "title", cerr.Field)

	_, err = svc.CreateHoliday(ctx, cqrs.CreateHolidayCommand{StartTime: "soon", Location: "", Title: "x"})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "start_time")
	assert.Contains(t, verr.Fields, "location")
}

func TestDeleteHoliday(t *testing.T) {
	writer := &fakeHolidayWriter{
		deleteFn: func(_ context.Context, id int64) error {
			if id == 1 {
				return nil
			}
			return repository.ErrNotFound
		},
	}
	pub := &fakePublisher{}
	svc := newHolidayService(writer, nil, nil, pub)

	require.NoError(t, svc.DeleteHoliday(context.Background(), cqrs.DeleteHolidayCommand{HolidayID: 1}))
	err := svc.DeleteHoliday(context.Background(), cqrs.DeleteHolidayCommand{HolidayID: 2})

	var nerr *service.NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "holiday", nerr.Entity)
	assert.Equal(t, []string{events.HolidayDeleted}, pub.types())
}

func TestRegisterAttendance(t *testing.T) {
	tests := []struct {
		name       string
		accountID  int64
		holidayID  int64
		addErr     error
		wantErr    error
		wantEntity string
	}{
		{name: "success", accountID: 1, holidayID: 10},
		{name: "both missing reports account", accountID: 2, holidayID: 20, wantErr: service.ErrNotFound, wantEntity: "account"},
		{name: "holiday missing", accountID: 1, holidayID: 20, wantErr: service.ErrNotFound, wantEntity: "holiday"},
		{name: "already attending", accountID: 1, holidayID: 10, addErr: &repository.ConstraintError{Kind: repository.ErrDuplicate, Constraint: repository.ConstraintAttendancePair}, wantErr: service.ErrConflict},
		{name: "holiday deleted meanwhile", accountID: 1, holidayID: 10, addErr: &repository.ConstraintError{Kind: repository.ErrForeignKey, Constraint: repository.ConstraintAttendanceEvent}, wantErr: service.ErrNotFound, wantEntity: "holiday"},
		{name: "account deleted meanwhile", accountID: 1, holidayID: 10, addErr: &repository.ConstraintError{Kind: repository.ErrForeignKey, Constraint: repository.ConstraintAttendanceUser}, wantErr: service.ErrNotFound, wantEntity: "account"},
		{name: "storage failure", accountID: 1, holidayID: 10, addErr: errors.New("boom"), wantErr: service.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &fakeHolidayWriter{
				addAttendeeFn: func(_ context.Context, accountID, holidayID int64) (*models.Attendance, error) {
					if tt.addErr != nil {
						return nil, tt.addErr
					}
					return &models.Attendance{AccountID: accountID, HolidayID: holidayID}, nil
				},
			}
			pub := &fakePublisher{}
			svc := newHolidayService(writer, map[int64]bool{10: true}, map[int64]bool{1: true}, pub)

			link, err := svc.RegisterAttendance(context.Background(), cqrs.RegisterAttendanceCommand{
				AccountID: tt.accountID,
				HolidayID: tt.holidayID,
			})
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, int64(1), link.AccountID)
				assert.Equal(t, int64(10), link.HolidayID)
				assert.Equal(t, []string{events.HolidayAttended}, pub.types())
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantEntity != "" {
				var nerr *service.NotFoundError
				require.ErrorAs(t, err, &nerr)
				assert.Equal(t, tt.wantEntity, nerr.Entity)
			}
			assert.Empty(t, pub.events)
		})
	}
}
