package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/petpawtner/petpawtner/internal/ctxkeys"
	"github.com/petpawtner/petpawtner/internal/model"
	"github.com/petpawtner/petpawtner/internal/repository"
	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/petpawtner/petpawtner/internal/ui"
	"github.com/petpawtner/petpawtner/internal/ui/pages"
)

type FeedHandler struct {
	postService    *service.PostService
	profileService *service.ProfileService
}

func NewFeedHandler(postService *service.PostService, profileService *service.ProfileService) *FeedHandler {
	return &FeedHandler{
		postService:    postService,
		profileService: profileService,
	}
}

func (h *FeedHandler) Index(w http.ResponseWriter, r *http.Request) {
	// Landing is session-gated: signed-in users go straight to the feed,
	// everyone else to sign-in.
	if ctxkeys.User(r.Context()) != nil {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

func (h *FeedHandler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.All()
	if err != nil {
		slog.Error("failed to load feed", "error", err)
		http.Error(w, "Failed to load feed", http.StatusInternalServerError)
		return
	}

	suggested, err := h.profileService.SuggestedProfile()
	if err != nil {
		// The feed is still useful without a suggestion.
		slog.Error("failed to pick suggested profile", "error", err)
		suggested = nil
	}

	ui.Render(w, r, pages.Home("", postViews(h.postService, posts), suggested))
}

func (h *FeedHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	profile, err := h.profileService.ByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
			return
		}
		slog.Error("failed to load profile", "error", err, "username", username)
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}

	posts, err := h.postService.ByUsername(username)
	if err != nil {
		slog.Error("failed to load posts", "error", err, "username", username)
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Profile(profile, postViews(h.postService, posts), len(posts)))
}

func (h *FeedHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}

// postViews resolves stored image references to servable URLs.
func postViews(postService *service.PostService, posts []*model.Post) []pages.PostView {
	views := make([]pages.PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, pages.PostView{
			Post:     post,
			ImageURL: postService.ImageURL(post.Image),
		})
	}
	return views
}
