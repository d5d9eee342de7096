package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/petpawtner/petpawtner/internal/model"
)

var ErrVetNotFound = errors.New("vet not found")

type VetRepository interface {
	ByProfileID(profileID string) (*model.Vet, error)
	SearchBySpecialty(query string) ([]*model.Vet, error)
}

type vetRepository struct {
	db *sqlx.DB
}

func NewVetRepository(db *sqlx.DB) VetRepository {
	return &vetRepository{db: db}
}

func (r *vetRepository) ByProfileID(profileID string) (*model.Vet, error) {
	vet := &model.Vet{}
	err := r.db.Get(vet, `SELECT * FROM vets WHERE profile_id = $1`, profileID)
	if err == sql.ErrNoRows {
		return nil, ErrVetNotFound
	}
	return vet, err
}

// SearchBySpecialty matches the query as a case-insensitive substring of the
// specialty. Results come back in storage order.
func (r *vetRepository) SearchBySpecialty(query string) ([]*model.Vet, error) {
	vets := []*model.Vet{}
	err := r.db.Select(&vets, `
		SELECT * FROM vets
		WHERE LOWER(specialty) LIKE $1 ESCAPE '\'
	`, likeContains(query))
	if err != nil {
		return nil, err
	}
	return vets, nil
}
