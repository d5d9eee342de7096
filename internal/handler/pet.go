package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/petpawtner/petpawtner/internal/ctxkeys"
	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/petpawtner/petpawtner/internal/ui"
	"github.com/petpawtner/petpawtner/internal/ui/pages"
)

type PetHandler struct {
	petService    *service.PetService
	uploadService *service.UploadService
}

func NewPetHandler(petService *service.PetService, uploadService *service.UploadService) *PetHandler {
	return &PetHandler{
		petService:    petService,
		uploadService: uploadService,
	}
}

func (h *PetHandler) AddPetsPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.AddPets(""))
}

func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(maxUploadMem)
	if err != nil {
		ui.Render(w, r, pages.AddPets("Could not read the form. Please try again."))
		return
	}

	in := service.PetInput{
		Name:     r.FormValue("name"),
		Breed:    r.FormValue("breed"),
		Age:      r.FormValue("age"),
		Sex:      r.FormValue("sex"),
		Bio:      r.FormValue("bio"),
		Location: r.FormValue("location"),
	}

	file, header, err := r.FormFile("avatar")
	if err == nil {
		defer file.Close()
		path, upErr := h.uploadService.SaveImage("pet_images", file, header)
		if upErr != nil {
			ui.Render(w, r, pages.AddPets(upErr.Error()))
			return
		}
		in.Avatar = path
	}

	_, err = h.petService.Register(user.ID, in)
	if err != nil {
		if errors.Is(err, service.ErrMissingField) {
			ui.Render(w, r, pages.AddPets("Name, breed and age are required"))
			return
		}
		slog.Error("failed to register pet", "error", err, "user_id", user.ID)
		ui.Render(w, r, pages.AddPets("Could not add your pet. Please try again."))
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}
