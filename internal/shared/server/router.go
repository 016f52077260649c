package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchfinder-backend/internal/catalog"
	"watchfinder-backend/internal/llm"
	"watchfinder-backend/internal/llm/gemini"
	"watchfinder-backend/internal/llm/openai"
	"watchfinder-backend/internal/recs"
	"watchfinder-backend/internal/services/health"
	"watchfinder-backend/internal/shared/config"
	"watchfinder-backend/internal/shared/metrics"
	"watchfinder-backend/internal/shared/server/middleware"
	"watchfinder-backend/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 5, Burst: 20},
				"POLLING": {Rate: 20, Burst: 60},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/sessions/:id/result" {
					return "POLLING"
				}
				return "DEFAULT"
			},
		}),
	)

	// Dependencies
	repo := recs.NewMemoryRepo()
	svc := &recs.Service{
		Repo:            repo,
		LLM:             newLLMClient(cfg),
		Provider:        cfg.LLMProvider,
		Model:           cfg.LLMModel,
		ContractVersion: llm.NormalizeContractVersion(cfg.ContractVersion),
		SearchTimeout:   cfg.SearchTimeout,
	}
	svc.StartJanitor(context.Background(), cfg.SessionTTL, cfg.JanitorInterval)

	healthSvc := health.NewService()
	catalogHandler := catalog.NewHandler()
	recsHandler := recs.NewHandler(svc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	catalogHandler.RegisterRoutes(api)
	recsHandler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

func newLLMClient(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "openai":
		cli, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("openai client unavailable: %v", err)
			return nil
		}
		return cli
	case "gemini":
		cli, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("gemini client unavailable: %v", err)
			return nil
		}
		return cli
	default:
		log.Printf("unknown llm provider %q, using placeholder", cfg.LLMProvider)
		return llm.PlaceholderClient{}
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
