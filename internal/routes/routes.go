package routes

import (
	"net/http"

	"github.com/petpawtner/petpawtner/internal/app"
	"github.com/petpawtner/petpawtner/internal/handler"
	"github.com/petpawtner/petpawtner/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	settings := handler.NewSettingsHandler(app.ProfileService, app.UploadService)
	pet := handler.NewPetHandler(app.PetService, app.UploadService)
	post := handler.NewPostHandler(app.PostService, app.ProfileService)
	feed := handler.NewFeedHandler(app.PostService, app.ProfileService)
	search := handler.NewSearchHandler(app.SearchService)

	mux := http.NewServeMux()

	// Auth flow (rate limited on the state-changing requests)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("GET /signup", middleware.RequireGuest(auth.SignupPage))
	mux.HandleFunc("POST /signup", rateLimiter(middleware.RequireGuest(auth.Signup)))
	mux.HandleFunc("GET /signin", middleware.RequireGuest(auth.SigninPage))
	mux.HandleFunc("POST /signin", rateLimiter(middleware.RequireGuest(auth.Signin)))
	mux.HandleFunc("GET /signout", middleware.RequireAuth(auth.Signout))

	// Landing + feed
	mux.HandleFunc("GET /{$}", feed.Index)
	mux.HandleFunc("GET /home", middleware.RequireAuth(feed.Home))
	mux.HandleFunc("GET /profile/{username}", middleware.RequireAuth(feed.ProfilePage))

	// Profile completion and pets
	mux.HandleFunc("GET /settings", middleware.RequireAuth(settings.SettingsPage))
	mux.HandleFunc("POST /settings", middleware.RequireAuth(settings.Update))
	mux.HandleFunc("GET /add_pets", middleware.RequireAuth(pet.AddPetsPage))
	mux.HandleFunc("POST /add_pets", middleware.RequireAuth(pet.Create))

	// Posts and likes
	mux.HandleFunc("POST /post", middleware.RequireAuth(post.Create))
	mux.HandleFunc("GET /like_post", middleware.RequireAuth(post.LikePost))

	// Search
	mux.HandleFunc("GET /search", middleware.RequireAuth(search.Search))

	// 404
	mux.HandleFunc("/{path...}", feed.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.Auth(app.AuthService, app.UserService, app.ProfileService),
	)

	return handler
}
