package command

import (
	"context"

	"github.com/holidayhub/directory/shared/models"
)

type fakeAccountWriter struct {
	createFn         func(ctx context.Context, account *models.Account) error
	updateUsernameFn func(ctx context.Context, id int64, username string) (*models.AccountView, error)
	updateAboutMeFn  func(ctx context.Context, id int64, aboutMe string) (*models.AccountView, error)
	deleteFn         func(ctx context.Context, id int64) error
	usernameTakenFn  func(ctx context.Context, username string, excludeID int64) (bool, error)
	emailTakenFn     func(ctx context.Context, email string) (bool, error)
}

func (f *fakeAccountWriter) Create(ctx context.Context, account *models.Account) error {
	return f.createFn(ctx, account)
}

func (f *fakeAccountWriter) UpdateUsername(ctx context.Context, id int64, username string) (*models.AccountView, error) {
	return f.updateUsernameFn(ctx, id, username)
}

func (f *fakeAccountWriter) UpdateAboutMe(ctx context.Context, id int64, aboutMe string) (*models.AccountView, error) {
	return f.updateAboutMeFn(ctx, id, aboutMe)
}

func (f *fakeAccountWriter) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeAccountWriter) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	if f.usernameTakenFn == nil {
		return false, nil
	}
	return f.usernameTakenFn(ctx, username, excludeID)
}

func (f *fakeAccountWriter) EmailTaken(ctx context.Context, email string) (bool, error) {
	if f.emailTakenFn == nil {
		return false, nil
	}
	return f.emailTakenFn(ctx, email)
}

type fakeReadModel struct {
	existing    map[int64]bool
	existsErr   error
	cached      []*models.AccountView
	invalidated []int64
}

func (f *fakeReadModel) Exists(_ context.Context, id int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[id], nil
}

func (f *fakeReadModel) CacheAccountView(_ context.Context, view *models.AccountView) {
	f.cached = append(f.cached, view)
}

func (f *fakeReadModel) InvalidateAccountView(_ context.Context, id int64) {
	f.invalidated = append(f.invalidated, id)
}

type fakeHolidayWriter struct {
	createFn      func(ctx context.Context, holiday *models.Holiday) error
	deleteFn      func(ctx context.Context, id int64) error
	addAttendeeFn func(ctx context.Context, accountID, holidayID int64) (*models.Attendance, error)
}

func (f *fakeHolidayWriter) Create(ctx context.Context, holiday *models.Holiday) error {
	return f.createFn(ctx, holiday)
}

func (f *fakeHolidayWriter) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeHolidayWriter) AddAttendee(ctx context.Context, accountID, holidayID int64) (*models.Attendance, error) {
	return f.addAttendeeFn(ctx, accountID, holidayID)
}

type fakeHolidayLookup struct {
	existing map[int64]bool
}

func (f *fakeHolidayLookup) Exists(_ context.Context, id int64) (bool, error) {
	return f.existing[id], nil
}

type publishedEvent struct {
	Type string
	Data any
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, data any) error {
	f.events = append(f.events, publishedEvent{Type: eventType, Data: data})
	return f.err
}

func (f *fakePublisher) types() []string {
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}
