package command

import (
	"context"

	"github.com/holidayhub/directory/shared/models"
)

// AccountWriter is the write store the account commands mutate.
type AccountWriter interface {
	Create(ctx context.Context, account *models.Account) error
	UpdateUsername(ctx context.Context, id int64, username string) (*models.AccountView, error)
	UpdateAboutMe(ctx context.Context, id int64, aboutMe string) (*models.AccountView, error)
	Delete(ctx context.Context, id int64) error
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// AccountReadModel is the side of the read repository the command services
// keep current and use for existence checks.
type AccountReadModel interface {
	Exists(ctx context.Context, id int64) (bool, error)
	CacheAccountView(ctx context.Context, view *models.AccountView)
	InvalidateAccountView(ctx context.Context, id int64)
}

type HolidayWriter interface {
	Create(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id int64) error
	AddAttendee(ctx context.Context, accountID, holidayID int64) (*models.Attendance, error)
}

type HolidayLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data any) error
}
