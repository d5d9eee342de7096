package model

import "time"

// DefaultVetAvatar is the placeholder for vet profiles.
const DefaultVetAvatar = "vet-icon.png"

type Vet struct {
	ID                string    `db:"id"`
	ProfileID         string    `db:"profile_id"`
	ClinicName        string    `db:"clinic_name"`
	Specialty         string    `db:"specialty"`
	YearsOfExperience int       `db:"years_of_experience"`
	ContactInfo       string    `db:"contact_info"`
	Avatar            string    `db:"avatar"`
	Location          string    `db:"location"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
