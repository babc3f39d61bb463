package service

import (
	"go.uber.org/zap"

	"github.com/safetrip/safetrip/internal/cache"
	"github.com/safetrip/safetrip/internal/config"
	"github.com/safetrip/safetrip/internal/repository"
)

type Services struct {
	Tokens      *TokenCodec
	Auth        *AuthService
	Spot        *SpotService
	Application *ApplicationService
}

func NewServices(repos *repository.Repositories, c *cache.Cache, cfg *config.Config, logger *zap.Logger) *Services {
	tokens := NewTokenCodec(cfg.JWTSecret, cfg.SessionMaxAge)
	spotService := NewSpotService(repos.Spot, c, logger)

	return &Services{
		Tokens:      tokens,
		Auth:        NewAuthService(repos.Account, tokens),
		Spot:        spotService,
		Application: NewApplicationService(repos.Account, repos.Application, spotService),
	}
}
