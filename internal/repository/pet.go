package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/petpawtner/petpawtner/internal/model"
)

type PetRepository interface {
	Create(pet *model.Pet) error
	ByProfileID(profileID string) ([]*model.Pet, error)
	SearchNameOrBreed(query string) ([]*model.Pet, error)
}

type petRepository struct {
	db *sqlx.DB
}

func NewPetRepository(db *sqlx.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(pet *model.Pet) error {
	if pet.ID == "" {
		pet.ID = uuid.New().String()
	}
	if pet.CreatedAt.IsZero() {
		pet.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO pets (id, profile_id, name, breed, age, sex, bio, avatar, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, pet.ID, pet.ProfileID, pet.Name, pet.Breed, pet.Age, pet.Sex, pet.Bio, pet.Avatar, pet.Location, pet.CreatedAt)

	return err
}

func (r *petRepository) ByProfileID(profileID string) ([]*model.Pet, error) {
	pets := []*model.Pet{}
	err := r.db.Select(&pets, `SELECT * FROM pets WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, err
	}
	return pets, nil
}

// likeContains builds a LIKE pattern matching rows whose column contains the
// query as a literal substring. % and _ in the query are escaped so they never
// act as wildcards; pair with ESCAPE '\'.
func likeContains(query string) string {
	query = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + strings.ToLower(query) + "%"
}

// SearchNameOrBreed matches the query as a case-insensitive substring of the
// pet's name or breed.
func (r *petRepository) SearchNameOrBreed(query string) ([]*model.Pet, error) {
	pets := []*model.Pet{}
	err := r.db.Select(&pets, `
		SELECT * FROM pets
		WHERE LOWER(name) LIKE $1 ESCAPE '\'
		   OR LOWER(breed) LIKE $1 ESCAPE '\'
	`, likeContains(query))
	if err != nil {
		return nil, err
	}
	return pets, nil
}
