// Package admin implements the maintenance surface: password login and the
// manual aggregation trigger.
package admin

import "time"

// Session is one admin login. The token is an opaque bearer credential.
type Session struct {
	ID        int       `db:"id"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}
