package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/bodega-app/internal/application/ports"
	"github.com/jhoicas/bodega-app/internal/infrastructure/storage"
	"github.com/jhoicas/bodega-app/internal/interfaces/cli"
	"github.com/jhoicas/bodega-app/pkg/config"
	"github.com/jhoicas/bodega-app/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		return cli.ExitError
	}

	// stderr: la salida estándar queda para las tablas del cliente
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		Out:   os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store ports.KeyValueStore = storage.NewMemoryStore()
	if cfg.Storage.Path != "" {
		sq, err := storage.OpenSQLite(ctx, cfg.Storage.Path)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.Storage.Path).Msg("abrir almacenamiento")
			return cli.ExitError
		}
		defer sq.Close()
		store = sq
	}

	app := cli.New(cli.Deps{
		Config: cfg,
		Store:  store,
		Log:    log,
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
	})
	defer app.Close()

	return app.Run(ctx, os.Args[1:])
}
