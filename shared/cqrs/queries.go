package cqrs

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by ID.
type GetAccountQuery struct {
	AccountID int64
}

// ListAccountsQuery fetches every account in creation order.
type ListAccountsQuery struct{}

// ListAccountHolidaysQuery fetches the holidays an account attends.
type ListAccountHolidaysQuery struct {
	AccountID int64
}

// ---------- Holiday queries ----------

type GetHolidayQuery struct {
	HolidayID int64
}

type ListHolidaysQuery struct{}

// ListAttendeesQuery fetches the accounts registered for a holiday.
type ListAttendeesQuery struct {
	HolidayID int64
}
