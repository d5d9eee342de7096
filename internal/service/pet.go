package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/petpawtner/petpawtner/internal/model"
	"github.com/petpawtner/petpawtner/internal/repository"
)

var ErrMissingField = errors.New("missing required field")

type PetInput struct {
	Name     string
	Breed    string
	Age      string
	Sex      string
	Bio      string
	Avatar   string
	Location string
}

type PetService struct {
	petRepository     repository.PetRepository
	profileRepository repository.ProfileRepository
}

func NewPetService(petRepository repository.PetRepository, profileRepository repository.ProfileRepository) *PetService {
	return &PetService{
		petRepository:     petRepository,
		profileRepository: profileRepository,
	}
}

// Register creates a pet owned by the acting user's profile. Name, breed and
// age are required; nothing is written when any is missing.
func (s *PetService) Register(userID string, in PetInput) (*model.Pet, error) {
	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	breed := strings.TrimSpace(in.Breed)
	age := strings.TrimSpace(in.Age)

	if name == "" || breed == "" || age == "" {
		return nil, ErrMissingField
	}

	sex := strings.TrimSpace(in.Sex)
	if sex == "" {
		sex = "Unknown"
	}
	avatar := in.Avatar
	if avatar == "" {
		avatar = model.DefaultAvatar
	}

	pet := &model.Pet{
		ProfileID: profile.ID,
		Name:      name,
		Breed:     breed,
		Age:       age,
		Sex:       sex,
		Bio:       strings.TrimSpace(in.Bio),
		Avatar:    avatar,
		Location:  strings.TrimSpace(in.Location),
	}

	err = s.petRepository.Create(pet)
	if err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	slog.Info("pet registered", "user_id", userID, "pet_id", pet.ID, "name", name)
	return pet, nil
}

func (s *PetService) ByProfileID(profileID string) ([]*model.Pet, error) {
	return s.petRepository.ByProfileID(profileID)
}
