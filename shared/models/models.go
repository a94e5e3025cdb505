package models

import "time"

// CreationMethod records which protocol surface created an account.
type CreationMethod string

const (
	MethodREST      CreationMethod = "rest"
	MethodSOAP      CreationMethod = "soap"
	MethodInterface CreationMethod = "interface"
)

// Valid reports whether m is one of the known creation methods.
func (m CreationMethod) Valid() bool {
	switch m {
	case MethodREST, MethodSOAP, MethodInterface:
		return true
	}
	return false
}

type Account struct {
	ID             int64          `json:"id" db:"id"`
	Username       string         `json:"username" db:"username"`
	Email          string         `json:"email" db:"email"`
	PasswordHash   string         `json:"-" db:"password_hash"`
	AboutMe        string         `json:"about_me" db:"about_me"`
	CreationMethod CreationMethod `json:"creation_method" db:"creation_method"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

type Holiday struct {
	ID        int64     `json:"id" db:"id"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	Location  string    `json:"location" db:"location"`
	Title     string    `json:"title" db:"title"`
}

// Attendance is a single account→holiday registration.
type Attendance struct {
	AccountID int64     `json:"user_id" db:"user_id"`
	HolidayID int64     `json:"holiday_id" db:"holiday_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
