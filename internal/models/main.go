// Package models defines the core account types shared by the
// repositories and services.
package models

import "time"

// Maximum column widths. Writes exceeding these are rejected, never
// truncated.
const (
	MaxEmailLength = 100
	MaxHashLength  = 250
	MaxTokenLength = 250
	MaxNameLength  = 40
)

// User is a locally registered account keyed by email.
type User struct {
	// Email is the unique identifier for the user.
	Email string
	// HashedPassword is the bcrypt hash of the user's password.
	HashedPassword string
	// Federated marks users linked to an external identity provider.
	Federated bool
	// Blocked prevents session creation even with valid credentials.
	Blocked bool
	// RegisteredAt is the account creation timestamp.
	RegisteredAt time.Time
	// LastLogin is the most recent successful login timestamp.
	LastLogin time.Time
	// PushToken addresses outbound notifications to the user's device.
	PushToken string
	// DeviceKey is a generated secret used by the federated token
	// exchange. It is assigned at creation, never client-supplied.
	DeviceKey string
}

// GoogleAccount is an account auto-provisioned on first federated login.
type GoogleAccount struct {
	// Email is the unique identifier for the account.
	Email string
	// Secret is a generated credential, stable for the account's lifetime.
	Secret string
	// Blocked prevents session creation.
	Blocked bool
	// RegisteredAt is the provisioning timestamp.
	RegisteredAt time.Time
	// LastLogin is the most recent login timestamp.
	LastLogin time.Time
	// PushToken addresses outbound notifications.
	PushToken string
}

// Admin is an administrative account. Admins cannot be blocked and are
// excluded from metrics.
type Admin struct {
	Email          string
	HashedPassword string
	Name           string
}

// AccountSummary is one row of the moderation listing.
type AccountSummary struct {
	Email   string `json:"email"`
	Blocked bool   `json:"blocked"`
	Kind    string `json:"kind"`
}

// AccountTimes carries the timestamps used for metric aggregation.
type AccountTimes struct {
	RegisteredAt time.Time
	LastLogin    time.Time
	Blocked      bool
}

// MetricsSnapshot aggregates registration and login recency across users
// and google accounts.
type MetricsSnapshot struct {
	TotalAccounts           int `json:"total_accounts"`
	BlockedAccounts         int `json:"blocked_accounts"`
	NonBlockedAccounts      int `json:"non_blocked_accounts"`
	UsersRegisteredLast24h  int `json:"users_registered_last_24_hours"`
	UsersLoggedInLastHour   int `json:"users_logged_in_last_hour"`
	GoogleRegisteredLast24h int `json:"google_users_registered_last_24_hours"`
	GoogleLoggedInLastHour  int `json:"google_users_logged_in_last_hour"`
}
