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

const maxUploadMem = 8 << 20

type SettingsHandler struct {
	profileService *service.ProfileService
	uploadService  *service.UploadService
}

func NewSettingsHandler(profileService *service.ProfileService, uploadService *service.UploadService) *SettingsHandler {
	return &SettingsHandler{
		profileService: profileService,
		uploadService:  uploadService,
	}
}

func (h *SettingsHandler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())
	ui.Render(w, r, pages.Settings(profile, ""))
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	err := r.ParseMultipartForm(maxUploadMem)
	if err != nil {
		ui.Render(w, r, pages.Settings(profile, "Could not read the form. Please try again."))
		return
	}

	in := service.SettingsInput{
		Role:              r.FormValue("role"),
		Bio:               r.FormValue("bio"),
		Location:          r.FormValue("location"),
		ClinicName:        r.FormValue("clinic_name"),
		Specialty:         r.FormValue("specialty"),
		YearsOfExperience: r.FormValue("years_of_experience"),
		ContactInfo:       r.FormValue("contact_info"),
	}

	file, header, err := r.FormFile("avatar")
	if err == nil {
		defer file.Close()
		path, upErr := h.uploadService.SaveImage("profile_image", file, header)
		if upErr != nil {
			ui.Render(w, r, pages.Settings(profile, upErr.Error()))
			return
		}
		in.Avatar = path
	}

	next, err := h.profileService.UpdateSettings(user.ID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole),
			errors.Is(err, service.ErrMissingField),
			errors.Is(err, service.ErrInvalidYears):
			ui.Render(w, r, pages.Settings(profile, err.Error()))
		default:
			slog.Error("failed to update settings", "error", err, "user_id", user.ID)
			ui.Render(w, r, pages.Settings(profile, "Could not save your settings. Please try again."))
		}
		return
	}

	if next == service.NextAddPets {
		http.Redirect(w, r, "/add_pets", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}
