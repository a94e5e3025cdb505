package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/models"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// ---- mock implementations ----

type mockAccountCommander struct {
	createFn         func(cqrs.CreateAccountCommand) (*models.AccountView, error)
	updateUsernameFn func(cqrs.UpdateUsernameCommand) (*models.AccountView, error)
	updateAboutMeFn  func(cqrs.UpdateAboutMeCommand) (*models.AccountView, error)
	deleteAboutMeFn  func(cqrs.DeleteAboutMeCommand) (*models.AccountView, error)
	deleteFn         func(cqrs.DeleteAccountCommand) error
}

func (m *mockAccountCommander) CreateAccount(_ context.Context, cmd cqrs.CreateAccountCommand) (*models.AccountView, error) {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountCommander) UpdateUsername(_ context.Context, cmd cqrs.UpdateUsernameCommand) (*models.AccountView, error) {
	if m.updateUsernameFn != nil {
		return m.updateUsernameFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountCommander) UpdateAboutMe(_ context.Context, cmd cqrs.UpdateAboutMeCommand) (*models.AccountView, error) {
	if m.updateAboutMeFn != nil {
		return m.updateAboutMeFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountCommander) DeleteAboutMe(_ context.Context, cmd cqrs.DeleteAboutMeCommand) (*models.AccountView, error) {
	if m.deleteAboutMeFn != nil {
		return m.deleteAboutMeFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountCommander) DeleteAccount(_ context.Context, cmd cqrs.DeleteAccountCommand) error {
	if m.deleteFn != nil {
		return m.deleteFn(cmd)
	}
	return fmt.Errorf("not configured")
}

type mockAccountQuerier struct {
	getFn  func(cqrs.GetAccountQuery) (*models.AccountView, error)
	listFn func(cqrs.ListAccountsQuery) ([]models.AccountView, error)
}

func (m *mockAccountQuerier) GetAccount(_ context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountQuerier) ListAccounts(_ context.Context, q cqrs.ListAccountsQuery) ([]models.AccountView, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

type mockHolidayCommander struct {
	createFn func(cqrs.CreateHolidayCommand) (*models.Holiday, error)
	deleteFn func(cqrs.DeleteHolidayCommand) error
	attendFn func(cqrs.RegisterAttendanceCommand) (*models.Attendance, error)
}

func (m *mockHolidayCommander) CreateHoliday(_ context.Context, cmd cqrs.CreateHolidayCommand) (*models.Holiday, error) {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockHolidayCommander) DeleteHoliday(_ context.Context, cmd cqrs.DeleteHolidayCommand) error {
	if m.deleteFn != nil {
		return m.deleteFn(cmd)
	}
	return fmt.Errorf("not configured")
}
func (m *mockHolidayCommander) RegisterAttendance(_ context.Context, cmd cqrs.RegisterAttendanceCommand) (*models.Attendance, error) {
	if m.attendFn != nil {
		return m.attendFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockHolidayQuerier struct {
	getFn       func(cqrs.GetHolidayQuery) (*models.Holiday, error)
	listFn      func(cqrs.ListHolidaysQuery) ([]models.Holiday, error)
	attendeesFn func(cqrs.ListAttendeesQuery) ([]models.AccountView, error)
	byAccountFn func(cqrs.ListAccountHolidaysQuery) ([]models.Holiday, error)
}

func (m *mockHolidayQuerier) GetHoliday(_ context.Context, q cqrs.GetHolidayQuery) (*models.Holiday, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockHolidayQuerier) ListHolidays(_ context.Context, q cqrs.ListHolidaysQuery) ([]models.Holiday, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockHolidayQuerier) ListAttendees(_ context.Context, q cqrs.ListAttendeesQuery) ([]models.AccountView, error) {
	if m.attendeesFn != nil {
		return m.attendeesFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockHolidayQuerier) ListAccountHolidays(_ context.Context, q cqrs.ListAccountHolidaysQuery) ([]models.Holiday, error) {
	if m.byAccountFn != nil {
		return m.byAccountFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newTestRouter(svc Services) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if svc.AccountCommands == nil {
		svc.AccountCommands = &mockAccountCommander{}
	}
	if svc.AccountQueries == nil {
		svc.AccountQueries = &mockAccountQuerier{}
	}
	if svc.HolidayCommands == nil {
		svc.HolidayCommands = &mockHolidayCommander{}
	}
	if svc.HolidayQueries == nil {
		svc.HolidayQueries = &mockHolidayQuerier{}
	}
	log, _ := logtest.NewNullLogger()
	return NewRouter(svc, log)
}
