package cqrs

import "github.com/holidayhub/directory/shared/models"

type CreateAccountCommand struct {
	Username string
	Email    string
	Password string
	Method   models.CreationMethod
}

type UpdateUsernameCommand struct {
	AccountID int64
	Username  string
}

type UpdateAboutMeCommand struct {
	AccountID int64
	AboutMe   string
}

type DeleteAboutMeCommand struct {
	AccountID int64
}

type DeleteAccountCommand struct {
	AccountID int64
}

// CreateHolidayCommand carries the raw start time so that parsing failures
// are reported alongside the other field errors.
type CreateHolidayCommand struct {
	StartTime string
	Location  string
	Title     string
}

type DeleteHolidayCommand struct {
	HolidayID int64
}

type RegisterAttendanceCommand struct {
	AccountID int64
	HolidayID int64
}
