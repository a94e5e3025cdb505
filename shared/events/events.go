package events

import "time"

// Event types
const (
	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"

	HolidayCreated  = "holiday.created"
	HolidayDeleted  = "holiday.deleted"
	HolidayAttended = "holiday.attended"
)

// DirectoryEventsStream is the default stream name; deployments may override
// it through configuration.
const DirectoryEventsStream = "directory.events"

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Account events
type AccountCreatedEvent struct {
	AccountID      int64  `json:"accountId"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	CreationMethod string `json:"creationMethod"`
}

type AccountUpdatedEvent struct {
	AccountID int64  `json:"accountId"`
	Username  string `json:"username"`
	Field     string `json:"field"`
}

type AccountDeletedEvent struct {
	AccountID int64 `json:"accountId"`
}

// Holiday events
type HolidayCreatedEvent struct {
	HolidayID int64     `json:"holidayId"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
}

type HolidayDeletedEvent struct {
	HolidayID int64 `json:"holidayId"`
}

type HolidayAttendedEvent struct {
	HolidayID int64 `json:"holidayId"`
	AccountID int64 `json:"accountId"`
}
