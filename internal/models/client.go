package models

// Client represents a row of the clients table.
type Client struct {
	ClientID      string  `db:"client_id"`
	Name          string  `db:"name"`
	Email         string  `db:"email"`
	PasswordHash  string  `db:"password_hash"`
	IsAdmin       bool    `db:"is_admin"`
	IsBlacklisted bool    `db:"is_blacklisted"`
	AvatarURL     *string `db:"avatar_url"` // Nullable
	AuditFields
}
