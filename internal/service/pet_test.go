package service_test

import (
	"testing"

	"github.com/petpawtner/petpawtner/internal/model"
	"github.com/petpawtner/petpawtner/internal/repository"
	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPet(t *testing.T) {
	database := newTestDB(t)
	user := signupUser(t, database, "kira")
	profileRepo := repository.NewProfileRepository(database)
	pets := service.NewPetService(repository.NewPetRepository(database), profileRepo)

	pet, err := pets.Register(user.ID, service.PetInput{
		Name:  "Bingo",
		Breed: "Beagle",
		Age:   "3",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pet.ID)
	assert.Equal(t, "Unknown", pet.Sex)
	assert.Equal(t, model.DefaultAvatar, pet.Avatar)

	profile, err := profileRepo.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, pet.ProfileID)

	owned, err := pets.ByProfileID(profile.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Bingo", owned[0].Name)
}

func TestRegisterPetMissingFieldWritesNothing(t *testing.T) {
	database := newTestDB(t)
	user := signupUser(t, database, "kira")
	pets := service.NewPetService(repository.NewPetRepository(database), repository.NewProfileRepository(database))

	for _, in := range []service.PetInput{
		{Breed: "Beagle", Age: "3"},
		{Name: "Bingo", Age: "3"},
		{Name: "Bingo", Breed: "Beagle"},
		{Name: "  ", Breed: "Beagle", Age: "3"},
	} {
		_, err := pets.Register(user.ID, in)
		require.ErrorIs(t, err, service.ErrMissingField)
	}

	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(1) FROM pets`))
	assert.Zero(t, count)
}
