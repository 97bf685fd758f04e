package models

import "time"

// Contact is an entry in a collector's address book.
// Splits copy Name and Phone at creation, so editing a contact never
// changes historical participants.
type Contact struct {
	// ID is the unique identifier for the contact (UUID format).
	ID string

	// OwnerID is the user who owns this contact.
	OwnerID string

	Name string

	// Phone in international format without "+", as used by wa.me links.
	Phone string

	CreatedAt time.Time
}
