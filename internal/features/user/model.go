package user

import "time"

// SimplifiedUser is the thin account projection the notification read
// path needs: enough to evaluate cohort membership and reachability,
// never the full account document.
type SimplifiedUser struct {
	ID           string
	Phone        string
	CreationDate time.Time
	AccountType  string
	BusinessID   string
}
