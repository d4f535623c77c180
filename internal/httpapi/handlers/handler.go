package handlers

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"codementor-backend/internal/ai"
	"codementor-backend/internal/config"
	"codementor-backend/internal/review"
	"codementor-backend/internal/store/rabbitmq"
)

type Handler struct {
	DB       *gorm.DB
	Cfg      config.Config
	Store    review.Store
	ChatMgr  *review.SessionManager
	Chats    *review.QueryService
	Registry *ai.Registry
	Rabbit   *rabbitmq.Publisher
}

func NewHandler(db *gorm.DB, cfg config.Config, pub *rabbitmq.Publisher) *Handler {
	store := review.NewRepo(db)

	reg := ai.NewRegistry()
	reg.SetDefault("ollama")
	reg.Register("ollama", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OllamaModel
		}
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, m), nil
	})
	reg.Register("azure", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		_ = model // the deployment fixes the model
		return ai.NewAzureOpenAIProvider(ai.ClientConfig{
			APIKey:     cfg.AzureAPIKey,
			Endpoint:   cfg.AzureEndpoint,
			Deployment: cfg.AzureDeployment,
			APIVersion: cfg.AzureAPIVersion,
		}), nil
	})

	return &Handler{
		DB:       db,
		Cfg:      cfg,
		Store:    store,
		ChatMgr:  review.NewSessionManager(store),
		Chats:    review.NewQueryService(store),
		Registry: reg,
		Rabbit:   pub,
	}
}
