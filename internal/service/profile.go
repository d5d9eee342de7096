package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/petpawtner/petpawtner/internal/model"
	"github.com/petpawtner/petpawtner/internal/repository"
)

var (
	ErrInvalidRole  = errors.New("role must be owner or vet")
	ErrInvalidYears = errors.New("years of experience must be a non-negative number")
)

// SettingsInput carries the settings form fields. Vet fields are required
// only when the role is vet.
type SettingsInput struct {
	Role              string
	Bio               string
	Location          string
	Avatar            string // blob reference, empty keeps the current one
	ClinicName        string
	Specialty         string
	YearsOfExperience string
	ContactInfo       string
}

// NextStep tells the handler where to send the user after settings are saved.
type NextStep int

const (
	NextAddPets NextStep = iota // owners go register their pets
	NextHome                    // vets land on the feed
)

type ProfileService struct {
	profileRepository repository.ProfileRepository
}

func NewProfileService(profileRepository repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepository: profileRepository,
	}
}

func (s *ProfileService) ByUserID(userID string) (*model.Profile, error) {
	return s.profileRepository.ByUserID(userID)
}

func (s *ProfileService) ByUsername(username string) (*model.Profile, error) {
	return s.profileRepository.ByUsername(username)
}

// UpdateSettings applies the settings form to the acting user's profile.
// An invalid role rejects the whole update; the vet upsert and the profile
// write land in one transaction.
func (s *ProfileService) UpdateSettings(userID string, in SettingsInput) (NextStep, error) {
	role := model.Role(strings.TrimSpace(in.Role))
	if !role.Valid() {
		return 0, ErrInvalidRole
	}

	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.Role = role
	profile.Bio = strings.TrimSpace(in.Bio)
	profile.Location = strings.TrimSpace(in.Location)
	if in.Avatar != "" {
		profile.Avatar = in.Avatar
	}

	var vet *model.Vet
	if role == model.RoleVet {
		vet, err = s.vetFromInput(profile, in)
		if err != nil {
			return 0, err
		}
	}

	err = s.profileRepository.UpdateSettings(profile, vet)
	if err != nil {
		return 0, fmt.Errorf("failed to update settings: %w", err)
	}

	slog.Info("profile settings updated", "user_id", userID, "role", role)

	if role == model.RoleVet {
		return NextHome, nil
	}
	return NextAddPets, nil
}

func (s *ProfileService) vetFromInput(profile *model.Profile, in SettingsInput) (*model.Vet, error) {
	clinic := strings.TrimSpace(in.ClinicName)
	specialty := strings.TrimSpace(in.Specialty)
	yearsStr := strings.TrimSpace(in.YearsOfExperience)

	if clinic == "" || specialty == "" || yearsStr == "" {
		return nil, ErrMissingField
	}

	years, err := strconv.Atoi(yearsStr)
	if err != nil || years < 0 {
		return nil, ErrInvalidYears
	}

	avatar := profile.Avatar
	if avatar == "" || avatar == model.DefaultAvatar {
		avatar = model.DefaultVetAvatar
	}

	vet := &model.Vet{
		ProfileID:         profile.ID,
		ClinicName:        clinic,
		Specialty:         specialty,
		YearsOfExperience: years,
		ContactInfo:       strings.TrimSpace(in.ContactInfo),
		Avatar:            avatar,
		Location:          profile.Location,
	}
	if profile.Vet != nil {
		// Overwrite the existing row in place rather than duplicating it.
		vet.ID = profile.Vet.ID
	}

	return vet, nil
}

// SuggestedProfile returns a uniformly random profile among those that have
// set an avatar, or nil when no such profile exists.
func (s *ProfileService) SuggestedProfile() (*model.Profile, error) {
	profile, err := s.profileRepository.RandomWithAvatar()
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}
