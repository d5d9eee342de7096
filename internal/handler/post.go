package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/petpawtner/petpawtner/internal/ctxkeys"
	"github.com/petpawtner/petpawtner/internal/repository"
	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/petpawtner/petpawtner/internal/ui"
	"github.com/petpawtner/petpawtner/internal/ui/pages"
	"github.com/petpawtner/petpawtner/internal/validation"
)

type PostHandler struct {
	postService    *service.PostService
	profileService *service.ProfileService
}

func NewPostHandler(postService *service.PostService, profileService *service.ProfileService) *PostHandler {
	return &PostHandler{
		postService:    postService,
		profileService: profileService,
	}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(maxUploadMem)
	if err != nil {
		h.renderFeed(w, r, "Could not read the form. Please try again.")
		return
	}

	caption := r.FormValue("caption")
	file, header, err := r.FormFile("image")
	if err != nil {
		h.renderFeed(w, r, "An image and a caption are required")
		return
	}
	defer file.Close()

	err = validation.ValidateImage(file, header)
	if err != nil {
		h.renderFeed(w, r, err.Error())
		return
	}

	_, err = h.postService.Create(user.Username, caption, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageRequired), errors.Is(err, service.ErrCaptionTooLong):
			h.renderFeed(w, r, err.Error())
		default:
			slog.Error("failed to create post", "error", err, "username", user.Username)
			h.renderFeed(w, r, "Could not publish your post. Please try again.")
		}
		return
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	postID := r.URL.Query().Get("post_id")

	_, _, err := h.postService.ToggleLike(postID, user.Username)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
			return
		}
		slog.Error("failed to toggle like", "error", err, "post_id", postID, "username", user.Username)
		http.Error(w, "Could not update like", http.StatusInternalServerError)
		return
	}

	// Send the user back where they clicked, falling back to the feed.
	referer := r.Header.Get("Referer")
	if referer == "" {
		referer = "/home"
	}
	http.Redirect(w, r, referer, http.StatusSeeOther)
}

// renderFeed re-renders the home feed with a form error message.
func (h *PostHandler) renderFeed(w http.ResponseWriter, r *http.Request, errMsg string) {
	posts, err := h.postService.All()
	if err != nil {
		slog.Error("failed to load posts", "error", err)
		posts = nil
	}

	suggested, err := h.profileService.SuggestedProfile()
	if err != nil {
		slog.Error("failed to pick suggested profile", "error", err)
		suggested = nil
	}

	ui.Render(w, r, pages.Home(errMsg, postViews(h.postService, posts), suggested))
}
