package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"claritydocs-backend/internal/analysis"
	"claritydocs-backend/internal/analysis/gemini"
	"claritydocs-backend/internal/analysis/openai"
	googleauth "claritydocs-backend/internal/auth"
	"claritydocs-backend/internal/extract"
	"claritydocs-backend/internal/history"
	"claritydocs-backend/internal/intake"
	"claritydocs-backend/internal/session"
	"claritydocs-backend/internal/shared/config"
	"claritydocs-backend/internal/shared/server"
	"claritydocs-backend/internal/shared/storage/db"
	"claritydocs-backend/internal/shared/storage/object"
	localstore "claritydocs-backend/internal/shared/storage/object/local"
	s3store "claritydocs-backend/internal/shared/storage/object/s3"
	"claritydocs-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Sessions       session.Store
	HistoryRepo    history.Repo
	UsersRepo      users.Repo
	HistoryService *history.Service
	UsersService   *users.Service
	Gateway        *analysis.Gateway
	Extractor      *extract.Service
	Orchestrator   *intake.Orchestrator
	IntakeHandler  *intake.Handler
	HistoryHandler *history.Handler
	UsersHandler   *users.Handler
	GoogleAuth     *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := buildSessions(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Sessions: sessions,
	}
	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		IntakeHandler:  app.IntakeHandler,
		HistoryHandler: app.HistoryHandler,
		UsersHandler:   app.UsersHandler,
		GoogleAuth:     app.GoogleAuth,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, "")
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildSessions(cfg config.Config) (session.Store, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: REDIS_URL empty; using in-memory session store")
			return session.NewMemoryStore(), nil
		}
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	store, err := session.NewRedisStore(cfg.RedisURL)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: redis connect failed; using in-memory session store: %v", err)
			return session.NewMemoryStore(), nil
		}
		return nil, err
	}
	return store, nil
}

func buildLLMClient(ctx context.Context, cfg config.Config) (analysis.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
	default:
		return gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"), cfg.LLMModel)
	}
}

// buildExtractor returns nil when the configured backend cannot be set up;
// extraction requests then fail with a configuration fault instead of
// blocking startup.
func buildExtractor(ctx context.Context, cfg config.Config) extract.Remote {
	switch cfg.Extractor {
	case "local":
		return extract.LocalExtractor{}
	default:
		client, err := extract.NewDocAIClient(ctx, cfg.DocAIProject, cfg.DocAILocation, cfg.DocAIProcessorID)
		if err != nil {
			log.Printf("bootstrap: document ai unavailable, extraction disabled: %v", err)
			return nil
		}
		return client
	}
}

func buildServices(ctx context.Context, app *App) error {
	var historyRepo history.Repo
	var userRepo users.Repo
	if app.DB != nil {
		historyRepo = &history.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		historyRepo = history.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	llmClient, err := buildLLMClient(ctx, app.Config)
	if err != nil {
		return err
	}

	app.HistoryRepo = historyRepo
	app.UsersRepo = userRepo
	app.HistoryService = history.NewService(historyRepo)
	app.UsersService = users.NewService(userRepo)
	app.Gateway = analysis.NewGateway(llmClient)
	app.Extractor = &extract.Service{
		Remote: buildExtractor(ctx, app.Config),
		Store:  app.Store,
	}
	app.Orchestrator = intake.NewOrchestrator(app.Sessions, app.Gateway, app.HistoryService, app.Extractor)

	app.IntakeHandler = intake.NewHandler(app.Orchestrator)
	app.HistoryHandler = history.NewHandler(app.HistoryService)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
