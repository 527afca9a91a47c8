package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"projectdocs-backend/internal/analyses"
	googleauth "projectdocs-backend/internal/auth"
	"projectdocs-backend/internal/documents"
	"projectdocs-backend/internal/llm"
	anthropic "projectdocs-backend/internal/llm/anthropic"
	"projectdocs-backend/internal/shared/config"
	"projectdocs-backend/internal/shared/server"
	"projectdocs-backend/internal/shared/storage/db"
	"projectdocs-backend/internal/shared/storage/object"
	localstore "projectdocs-backend/internal/shared/storage/object/local"
	"projectdocs-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	DocumentsRepo    documents.DocumentsRepo
	AnalysesRepo     analyses.Repo
	UsersRepo        users.Repo
	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
	UsersService     *users.Service
	DocumentsHandler *documents.Handler
	AnalysesHandler  *analyses.Handler
	UsersHandler     *users.Handler
	GoogleAuth       *googleauth.GoogleService
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

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  localstore.New(cfg.LocalStoreDir),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		UsersHandler:     app.UsersHandler,
		GoogleAuth:       app.GoogleAuth,
		DocumentsHandler: app.DocumentsHandler,
		AnalysesHandler:  app.AnalysesHandler,
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

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var docRepo documents.DocumentsRepo
	var analysisRepo analyses.Repo
	var userRepo users.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(app.Config.AnthropicAPIKey) != "" {
		client, err := anthropic.NewClient(app.Config.AnthropicAPIKey, app.Config.AnthropicModel)
		if err != nil {
			return err
		}
		llmClient = client
	}

	docSvc := &documents.Service{
		Store:    app.Store,
		Repo:     docRepo,
		Analyses: analysisAdapter{repo: analysisRepo},
	}

	analysisSvc := &analyses.Service{
		Repo:    analysisRepo,
		DocRepo: docRepo,
		Store:   app.Store,
		LLM:     llmClient,
	}

	userSvc := users.NewService(userRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	app.DocumentsRepo = docRepo
	app.AnalysesRepo = analysisRepo
	app.UsersRepo = userRepo
	app.DocumentsService = docSvc
	app.AnalysesService = analysisSvc
	app.UsersService = userSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.AnalysesHandler = analyses.NewHandler(analysisSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.GoogleAuth = googleAuthSvc

	if app.DocumentsHandler == nil || app.AnalysesHandler == nil || app.UsersHandler == nil {
		return errors.New("failed to initialize handlers")
	}

	return nil
}

// analysisAdapter narrows the analyses repo to what the documents package
// needs for listing and deletion.
type analysisAdapter struct {
	repo analyses.Repo
}

func (a analysisAdapter) GetByDocumentIDs(ctx context.Context, documentIDs []string) (map[string]documents.AnalysisRecord, error) {
	byDoc, err := a.repo.GetByDocumentIDs(ctx, documentIDs)
	if err != nil {
		return nil, err
	}
	records := make(map[string]documents.AnalysisRecord, len(byDoc))
	for docID, analysis := range byDoc {
		records[docID] = documents.AnalysisRecord{
			ID:                       analysis.ID,
			ProjectName:              analysis.ProjectName,
			ProjectDuration:          analysis.ProjectDuration,
			HumanResourcesHierarchy:  analysis.HumanResourcesHierarchy,
			ProjectStages:            analysis.ProjectStages,
			SpecialConditions:        analysis.SpecialConditions,
			ImplementationBoundaries: analysis.ImplementationBoundaries,
			AnalyzedAt:               analysis.AnalyzedAt,
		}
	}
	return records, nil
}

func (a analysisAdapter) DeleteByDocumentID(ctx context.Context, documentID string) error {
	return a.repo.DeleteByDocumentID(ctx, documentID)
}
