package models

import "time"

// User is a forum profile keyed by the identity provider's subject id.
// Display fields are synced from the provider; the forum only owns the
// posting-privacy and audience-tag preferences.
type User struct {
	UserID          string    `json:"userId"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	AvatarURL       string    `json:"avatarUrl,omitempty"`
	Email           string    `json:"email,omitempty"`
	StudentYear     string    `json:"studentYear,omitempty"`
	PostAnonymously bool      `json:"postAnonymously"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
