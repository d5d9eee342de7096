package model

import "time"

// Role is the profile variant tag. A profile is either a pet owner or a vet;
// vet details live in the attached Vet and are loaded only when the role is vet.
type Role string

const (
	RoleOwner Role = "owner"
	RoleVet   Role = "vet"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleVet
}

// DefaultAvatar is the placeholder every new profile and pet starts with.
// A profile with a different avatar counts as "has an avatar set" for the
// suggested-profile pick on the home feed.
const DefaultAvatar = "dog_paw-pp.png"

type Profile struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Bio       string    `db:"bio"`
	Avatar    string    `db:"avatar"`
	Location  string    `db:"location"`
	Role      Role      `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Username is joined in from users where the query needs it.
	Username string `db:"username"`

	// Vet is non-nil iff Role == RoleVet and vet onboarding completed.
	Vet *Vet `db:"-"`
}

func (p *Profile) HasAvatar() bool {
	return p.Avatar != "" && p.Avatar != DefaultAvatar
}
