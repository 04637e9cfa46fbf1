package models

import (
	"time"

	"github.com/google/uuid"
)

// UserAuth is the persisted account row.
type UserAuth struct {
	ID                  uuid.UUID
	Email               string
	Name                *string
	Image               *string
	PasswordHash        *string
	IsPremium           bool
	PreferredCurrency   Currency
	UnreadNotifications int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SessionUser is the authenticated-user snapshot handed to the navbar.
type SessionUser struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Image               string   `json:"image"`
	IsPremium           bool     `json:"isPremium"`
	PreferredCurrency   Currency `json:"preferredCurrency"`
	UnreadNotifications int      `json:"unreadNotifications"`
}

// Session is the shape served to the UI.
type Session struct {
	User *SessionUser `json:"user"`
}

// PublicUser is returned by signup.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *UserAuth) SessionUser() *SessionUser {
	if u == nil {
		return nil
	}
	su := &SessionUser{
		ID:                  u.ID.String(),
		Email:               u.Email,
		IsPremium:           u.IsPremium,
		PreferredCurrency:   u.PreferredCurrency,
		UnreadNotifications: u.UnreadNotifications,
	}
	if u.Name != nil {
		su.Name = *u.Name
	}
	if u.Image != nil {
		su.Image = *u.Image
	}
	if !su.PreferredCurrency.Valid() {
		su.PreferredCurrency = DefaultCurrency
	}
	return su
}

func (u *UserAuth) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
