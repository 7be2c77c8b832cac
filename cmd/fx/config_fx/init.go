package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"storefront/internal/config"
	"storefront/internal/secrets"
	"storefront/pkg/logger"
)

var Module = fx.Provide(
	config.Load, provideLogger, provideSecrets)

func provideLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})
}

func provideSecrets(cfg config.Config) secrets.Resolver {
	return secrets.NewResolver(cfg.SecretsDir)
}
