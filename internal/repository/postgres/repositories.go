package postgres

import (
	"github.com/safetrip/safetrip/internal/repository"
)

func NewRepositories(store Accessor) *repository.Repositories {
	return &repository.Repositories{
		Account:     NewAccountRepository(store),
		Spot:        NewSpotRepository(store),
		Application: NewApplicationRepository(store),
	}
}
