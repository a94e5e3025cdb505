package models

import "time"

// AccountView is the read-optimised projection of an account.
// It never exposes PasswordHash.
type AccountView struct {
	ID             int64          `json:"id" db:"id"`
	Username       string         `json:"username" db:"username"`
	Email          string         `json:"email" db:"email"`
	AboutMe        string         `json:"about_me" db:"about_me"`
	CreationMethod CreationMethod `json:"creation_method" db:"creation_method"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// ToView strips the credential from an account.
func (a *Account) ToView() *AccountView {
	return &AccountView{
		ID:             a.ID,
		Username:       a.Username,
		Email:          a.Email,
		AboutMe:        a.AboutMe,
		CreationMethod: a.CreationMethod,
		CreatedAt:      a.CreatedAt,
	}
}
