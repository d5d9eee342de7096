package service

import (
	"fmt"
	"strings"

	"github.com/petpawtner/petpawtner/internal/model"
	"github.com/petpawtner/petpawtner/internal/repository"
)

// SearchResults holds the pet and vet matches for one query.
type SearchResults struct {
	Pets []*model.Pet
	Vets []*model.Vet
}

type SearchService struct {
	petRepository repository.PetRepository
	vetRepository repository.VetRepository
}

func NewSearchService(petRepository repository.PetRepository, vetRepository repository.VetRepository) *SearchService {
	return &SearchService{
		petRepository: petRepository,
		vetRepository: vetRepository,
	}
}

// Search filters pets by name/breed and vets by specialty, case-insensitive
// substring match, storage order. An empty query returns empty result sets,
// not everything.
func (s *SearchService) Search(query string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &SearchResults{Pets: []*model.Pet{}, Vets: []*model.Vet{}}, nil
	}

	pets, err := s.petRepository.SearchNameOrBreed(query)
	if err != nil {
		return nil, fmt.Errorf("failed to search pets: %w", err)
	}

	vets, err := s.vetRepository.SearchBySpecialty(query)
	if err != nil {
		return nil, fmt.Errorf("failed to search vets: %w", err)
	}

	return &SearchResults{Pets: pets, Vets: vets}, nil
}
