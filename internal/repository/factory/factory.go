package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sebaaaap/Dashboard-prueba1/internal/config"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository/memory"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository/mongodb"
)

// Open builds the record store selected by STORE_DRIVER. MongoDB stores have their indexes ensured.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory record store, data is lost on exit")
		return memory.NewRepository(), nil
	case config.DriverMongoDB:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named("repo.mongodb"))
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = repo.Close(ctx)
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("store driver %q is not supported", cfg.Store.Driver)
	}
}
