package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/videosage-backend/internal/clients/gcp"
	"github.com/yungbote/videosage-backend/internal/clients/openai"
	"github.com/yungbote/videosage-backend/internal/clients/youtube"
	"github.com/yungbote/videosage-backend/internal/db"
	"github.com/yungbote/videosage-backend/internal/generation"
	"github.com/yungbote/videosage-backend/internal/handlers"
	"github.com/yungbote/videosage-backend/internal/ingestion/extractor"
	"github.com/yungbote/videosage-backend/internal/middleware"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
	"github.com/yungbote/videosage-backend/internal/repos"
	"github.com/yungbote/videosage-backend/internal/server"
	"github.com/yungbote/videosage-backend/internal/services"
)

type Repos struct {
	User       repos.UserRepo
	UserToken  repos.UserTokenRepo
	Space      repos.SpaceRepo
	Content    repos.ContentRepo
	Generation repos.GenerationRepo
}

type Services struct {
	Auth       services.AuthService
	Access     services.AccessService
	User       services.UserService
	Space      services.SpaceService
	Content    services.ContentService
	Generation services.GenerationService
}

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	speech   gcp.Speech
	vision   gcp.Vision
	document gcp.Document
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := Repos{
		User:       repos.NewUserRepo(theDB, log),
		UserToken:  repos.NewUserTokenRepo(theDB, log),
		Space:      repos.NewSpaceRepo(theDB, log),
		Content:    repos.NewContentRepo(theDB, log),
		Generation: repos.NewGenerationRepo(theDB, log),
	}

	speech, err := gcp.NewSpeech(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init speech client: %w", err)
	}
	vision, err := gcp.NewVision(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init vision client: %w", err)
	}
	document, err := gcp.NewDocument(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init documentai client: %w", err)
	}
	captions := youtube.NewCaptions(log)
	llm, err := openai.NewClient(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init openai client: %w", err)
	}

	ext := extractor.New(log, speech, captions, document, vision)
	gen := generation.NewGenerator(llm, log)

	access := services.NewAccessService(reposet.Space, reposet.Content, log)
	serviceset := Services{
		Auth: services.NewAuthService(services.AuthConfig{
			JWTSecret:  cfg.JWTSecretKey,
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		}, reposet.User, reposet.UserToken, log),
		Access:     access,
		User:       services.NewUserService(reposet.User, log),
		Space:      services.NewSpaceService(reposet.Space, access, log),
		Content:    services.NewContentService(reposet.Content, access, ext, log),
		Generation: services.NewGenerationService(reposet.Generation, access, gen, log),
	}

	authMiddleware := middleware.NewAuthMiddleware(log, serviceset.Auth)
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       handlers.NewAuthHandler(serviceset.Auth),
		AuthMiddleware:    authMiddleware,
		UserHandler:       handlers.NewUserHandler(serviceset.User),
		SpaceHandler:      handlers.NewSpaceHandler(serviceset.Space),
		ContentHandler:    handlers.NewContentHandler(log, serviceset.Content),
		GenerationHandler: handlers.NewGenerationHandler(serviceset.Generation),
		AllowOrigins:      cfg.AllowOrigins,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		speech:   speech,
		vision:   vision,
		document: document,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.speech != nil {
		a.speech.Close()
	}
	if a.vision != nil {
		a.vision.Close()
	}
	if a.document != nil {
		a.document.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
