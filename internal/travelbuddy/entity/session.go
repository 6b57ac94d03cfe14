package entity

import "time"

// Session holds the travel preferences gathered so far for one conversation.
// It lives only in memory and expires with its TTL.
type Session struct {
	ID          string
	Preferences map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
