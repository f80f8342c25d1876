package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/bodega-app/internal/application/auth"
	"github.com/jhoicas/bodega-app/internal/infrastructure/memory"
	"github.com/jhoicas/bodega-app/internal/sandbox"
	"github.com/jhoicas/bodega-app/pkg/config"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int64("seed", cfg.HTTP.Seed).
		Msg("iniciando sandbox")

	store := memory.NewStore()
	if err := memory.Seed(store, memory.DefaultSeedOptions(cfg.HTTP.Seed)); err != nil {
		log.Fatal().Err(err).Msg("datos de ejemplo")
	}

	app := sandbox.New(store, sandbox.Options{
		Name: cfg.App.Name,
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		// Swagger UI en local: http://localhost:<port>/docs
		SwaggerFile: "./docs/swagger.json",
	}, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("sandbox detenido")
}
