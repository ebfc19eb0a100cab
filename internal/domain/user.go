package domain

// Visibility controls whether a profile or review is exposed to the public feed.
type Visibility string

const (
	// VisibilityPublic makes the subject visible to everyone.
	VisibilityPublic Visibility = "PUBLIC"
	// VisibilityPrivate hides the subject from everyone but its owner.
	VisibilityPrivate Visibility = "PRIVATE"
)

// Valid reports whether v is a known visibility value.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// User represents an authenticated user account in the system.
type User struct {
	Entity
	Handle            string     `json:"handle"`
	PasswordHash      string     `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	DisplayName       string     `json:"display_name,omitempty"`
	ProfileVisibility Visibility `json:"profile_visibility"`
}

// IsPublic returns true if the user's profile is visible to other users.
func (u *User) IsPublic() bool {
	return u.ProfileVisibility == VisibilityPublic
}

// Name returns the best available name to display for the user.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Handle
}

// UserRef is the public identity of a user as embedded in feed items and comments.
type UserRef struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
}

// Ref returns the user's public identity.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Handle: u.Handle}
}
