package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"storefront/internal/config"
	"storefront/internal/infra"
	"storefront/internal/repositories"
)

var Module = fx.Provide(
	provideDB, provideOrderRepo, provideFinanceRepo, provideUserRepo)

func provideDB(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL, cfg.DBPool, log)
	if err != nil {
		return nil, err
	}
	if err := infra.AutoMigrate(db); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, log)
			return nil
		},
	})
	return db, nil
}

func provideOrderRepo(db *gorm.DB) repositories.OrderRepository {
	return repositories.NewOrderRepository(db)
}

func provideFinanceRepo(db *gorm.DB) repositories.FinanceRepository {
	return repositories.NewFinanceRepository(db)
}

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}
