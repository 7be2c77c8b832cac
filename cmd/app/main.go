package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"storefront/cmd/fx/config_fx"
	"storefront/cmd/fx/controllers_fx"
	"storefront/cmd/fx/dashboard"
	"storefront/cmd/fx/db_fx"
	"storefront/cmd/fx/finance_fx"
	"storefront/cmd/fx/mail_fx"
	"storefront/cmd/fx/payment_service_fx"
	"storefront/internal/api"
	"storefront/internal/config"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		mail_fx.Module,
		payment_service_fx.Module,
		finance_fx.Module,
		dashboard.Module,
		controllers_fx.Module,

		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(api.NewRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

// StartServer serves until fx stops the app. Gin's mode follows GIN_MODE.
func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped unexpectedly", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
