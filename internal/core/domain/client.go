package domain

// Client represents an account holder in the core domain.
// This is the primary representation used by services.
type Client struct {
	ClientID      string  `json:"clientID"` // Primary Key (UUID)
	Name          string  `json:"name"`
	Email         string  `json:"email"` // Unique across all clients
	PasswordHash  string  `json:"-"`     // bcrypt hash, never serialized
	IsAdmin       bool    `json:"isAdmin"`
	IsBlacklisted bool    `json:"isBlacklisted"`
	AvatarURL     *string `json:"avatarURL,omitempty"` // Optional avatar reference
	AuditFields
}
