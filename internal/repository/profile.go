package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/petpawtner/petpawtner/internal/model"
)

type ProfileRepository interface {
	ByUserID(userID string) (*model.Profile, error)
	ByUsername(username string) (*model.Profile, error)
	UpdateSettings(profile *model.Profile, vet *model.Vet) error
	RandomWithAvatar() (*model.Profile, error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `SELECT * FROM profiles WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.attachVet(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ByUsername(username string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `
		SELECT p.*, u.username FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE u.username = $1
	`, username)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.attachVet(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// attachVet loads vet details iff the profile's role is vet, keeping the
// owner/vet variant consistent with the stored role.
func (r *profileRepository) attachVet(profile *model.Profile) error {
	if profile.Role != model.RoleVet {
		profile.Vet = nil
		return nil
	}

	var vet model.Vet
	err := r.db.Get(&vet, `SELECT * FROM vets WHERE profile_id = $1`, profile.ID)
	if err == sql.ErrNoRows {
		// Role switched to vet but onboarding not completed yet.
		profile.Vet = nil
		return nil
	}
	if err != nil {
		return err
	}

	profile.Vet = &vet
	return nil
}

// UpdateSettings writes the profile fields and, when vet is non-nil, upserts
// the vet row in the same transaction. The whole update applies or none of it.
func (r *profileRepository) UpdateSettings(profile *model.Profile, vet *model.Vet) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now()
	result, err := tx.Exec(`
		UPDATE profiles
		SET bio = $1, avatar = $2, location = $3, role = $4, updated_at = $5
		WHERE id = $6
	`, profile.Bio, profile.Avatar, profile.Location, profile.Role, now, profile.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	if vet != nil {
		if vet.ID == "" {
			vet.ID = uuid.New().String()
		}
		vet.ProfileID = profile.ID
		_, err = tx.Exec(`
			INSERT INTO vets (id, profile_id, clinic_name, specialty, years_of_experience, contact_info, avatar, location, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (profile_id) DO UPDATE SET
				clinic_name = excluded.clinic_name,
				specialty = excluded.specialty,
				years_of_experience = excluded.years_of_experience,
				contact_info = excluded.contact_info,
				avatar = excluded.avatar,
				location = excluded.location,
				updated_at = excluded.updated_at
		`, vet.ID, vet.ProfileID, vet.ClinicName, vet.Specialty, vet.YearsOfExperience,
			vet.ContactInfo, vet.Avatar, vet.Location, now, now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RandomWithAvatar picks one profile uniformly at random among profiles that
// have replaced the placeholder avatar. Returns ErrProfileNotFound when none.
func (r *profileRepository) RandomWithAvatar() (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `
		SELECT p.*, u.username FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.avatar != '' AND p.avatar != $1
		ORDER BY RANDOM()
		LIMIT 1
	`, model.DefaultAvatar)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
