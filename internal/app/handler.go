package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/nova-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nova-backend/internal/adapter/postgres/chatsession"
	"github.com/heartmarshall/nova-backend/internal/adapter/postgres/dietplan"
	"github.com/heartmarshall/nova-backend/internal/adapter/postgres/dietsession"
	"github.com/heartmarshall/nova-backend/internal/adapter/postgres/doctor"
	"github.com/heartmarshall/nova-backend/internal/adapter/postgres/vitals"
	"github.com/heartmarshall/nova-backend/internal/config"
	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/inference"
	"github.com/heartmarshall/nova-backend/internal/llm"
	"github.com/heartmarshall/nova-backend/internal/observability"
	chatsvc "github.com/heartmarshall/nova-backend/internal/service/chat"
	dietsvc "github.com/heartmarshall/nova-backend/internal/service/diet"
	doctorsvc "github.com/heartmarshall/nova-backend/internal/service/doctor"
	"github.com/heartmarshall/nova-backend/internal/service/prediction"
	"github.com/heartmarshall/nova-backend/internal/transport/middleware"
	"github.com/heartmarshall/nova-backend/internal/transport/rest"
)

// TokenVerifier resolves a bearer token to the calling identity.
type TokenVerifier interface {
	ValidateToken(ctx context.Context, token string) (domain.Identity, error)
}

// Dependencies are the external collaborators the HTTP handler is built on.
type Dependencies struct {
	DB        *pgxpool.Pool
	Verifier  TokenVerifier
	Generator llm.Generator
	Maternal  inference.Classifier
	Fetal     inference.Classifier
	// Metrics may be nil.
	Metrics *observability.Metrics
}

// NewHandler wires repositories, services and transport into one handler.
// The returned stop function releases background workers.
func NewHandler(cfg *config.Config, logger *slog.Logger, deps Dependencies) (http.Handler, func()) {
	txm := postgres.NewTxManager(deps.DB)

	// Repositories
	vitalsRepo := vitals.New(deps.DB)
	chatRepo := chatsession.New(deps.DB, txm)
	dietSessionRepo := dietsession.New(deps.DB)
	dietPlanRepo := dietplan.New(deps.DB)
	doctorRepo := doctor.New(deps.DB)

	// Services
	predictionService := prediction.NewService(logger, deps.Maternal, deps.Fetal, vitalsRepo, deps.Metrics)
	chatService := chatsvc.NewService(logger, chatRepo, deps.Generator, deps.Metrics, chatsvc.Options{
		MaxMessageLength: cfg.Chat.MaxMessageLength,
		AppendAttempts:   cfg.Chat.AppendAttempts,
		HistoryLimit:     cfg.Chat.HistoryLimit,
		MaxTokens:        cfg.LLM.MaxTokens,
		Timeout:          cfg.LLM.Timeout,
		TitleTimeout:     cfg.LLM.TitleTimeout,
	})
	dietService := dietsvc.NewService(logger, dietSessionRepo, dietPlanRepo, deps.Generator, deps.Metrics,
		cfg.LLM.Timeout, cfg.LLM.MaxTokens)
	doctorService := doctorsvc.NewService(logger, doctorRepo)

	// Transport
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval, deps.Metrics)
	var limit middleware.Middleware
	if cfg.RateLimit.GenerationPerMinute > 0 {
		limit = limiter.Limit(cfg.RateLimit.GenerationPerMinute)
	}

	maxBody := cfg.Server.MaxBodyBytes
	routes := rest.Routes{
		Health:     rest.NewHealthHandler(deps.DB, BuildVersion(), deps.Maternal.Contract().ID(), deps.Fetal.Contract().ID()),
		Prediction: rest.NewPredictionHandler(predictionService, maxBody, logger),
		Chat:       rest.NewChatHandler(chatService, maxBody, logger),
		Diet:       rest.NewDietHandler(dietService, maxBody, logger),
		Doctor:     rest.NewDoctorHandler(doctorService, maxBody, logger),
		Auth:       middleware.Auth(deps.Verifier, logger),
		Limit:      limit,
	}
	if deps.Metrics != nil {
		routes.Metrics = deps.Metrics.Handler()
		routes.MetricsPath = cfg.Metrics.Path
	}

	global := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}
	// Metrics reads the matched pattern, so it wraps the mux directly.
	if deps.Metrics != nil {
		global = append(global, middleware.Metrics(deps.Metrics))
	}

	handler := middleware.Chain(global...)(rest.NewRouter(routes))
	return handler, limiter.Stop
}
