package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/petpawtner/petpawtner/internal/config"
	"github.com/petpawtner/petpawtner/internal/db"
	"github.com/petpawtner/petpawtner/internal/repository"
	"github.com/petpawtner/petpawtner/internal/service"
	"github.com/petpawtner/petpawtner/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	AuthService    *service.AuthService
	UserService    *service.UserService
	ProfileService *service.ProfileService
	PetService     *service.PetService
	PostService    *service.PostService
	SearchService  *service.SearchService
	MessageService *service.MessageService
	UploadService  *service.UploadService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations (can be disabled for externally managed schemas)
	if cfg.DBAutoMigrate {
		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			return nil, fmt.Errorf("failed to run migrations: %v", err)
		}
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	vetRepository := repository.NewVetRepository(database)
	petRepository := repository.NewPetRepository(database)
	postRepository := repository.NewPostRepository(database)
	messageRepository := repository.NewMessageRepository(database)

	// Storage
	blobStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry, cfg.IsProduction())
	userService := service.NewUserService(userRepository)
	profileService := service.NewProfileService(profileRepository)
	petService := service.NewPetService(petRepository, profileRepository)
	postService := service.NewPostService(postRepository, blobStorage)
	searchService := service.NewSearchService(petRepository, vetRepository)
	messageService := service.NewMessageService(messageRepository)
	uploadService := service.NewUploadService(blobStorage)

	return &App{
		Cfg:            cfg,
		DB:             database,
		AuthService:    authService,
		UserService:    userService,
		ProfileService: profileService,
		PetService:     petService,
		PostService:    postService,
		SearchService:  searchService,
		MessageService: messageService,
		UploadService:  uploadService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
