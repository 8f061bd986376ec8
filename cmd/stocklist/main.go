package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stocklist/internal/application/notify"
	"github.com/jhoicas/stocklist/internal/application/presenter"
	"github.com/jhoicas/stocklist/internal/application/stock"
	"github.com/jhoicas/stocklist/internal/domain/repository"
	"github.com/jhoicas/stocklist/internal/infrastructure/filestore"
	"github.com/jhoicas/stocklist/internal/infrastructure/memstore"
	"github.com/jhoicas/stocklist/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/stocklist/internal/infrastructure/pdf"
	"github.com/jhoicas/stocklist/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stocklist/internal/interfaces/http"
	"github.com/jhoicas/stocklist/pkg/config"
	"github.com/jhoicas/stocklist/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	blobs, closeBlobs, err := openBlobStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("abrir almacenamiento")
	}
	defer closeBlobs()

	store := stock.NewStore(blobs, cfg.Storage.Key, log.Component("store"))
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar inventario")
	}

	ttl := time.Duration(cfg.Notify.TTLSeconds) * time.Second
	banner := notify.NewBanner(ttl)
	p := presenter.New(store, banner, log.Component("presenter"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name + " API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if err := httpRouter.Router(app, httpRouter.RouterDeps{
		Presenter: p,
		Store:     store,
		Report:    infrapdf.NewStockReportGenerator(cfg.App.Name),
		Log:       log.Component("http"),
		Title:     "Inventario",
		NotifyTTL: banner.TTL(),
	}); err != nil {
		log.Fatal().Err(err).Msg("registrar rutas")
	}

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

	log.Info().Msg("aplicación detenida")
}

// openBlobStore elige el backend del almacenamiento clave-valor según STORAGE_DRIVER.
func openBlobStore(ctx context.Context, cfg *config.Config) (repository.BlobStore, func(), error) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memstore.New(), noop, nil
	case config.DriverFile:
		fs, err := filestore.New(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		repo := postgres.NewBlobRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return repo, pool.Close, nil
	case config.DriverMongoDB:
		repo, err := mongodb.NewBlobRepository(ctx, cfg.Mongo.URI, cfg.Mongo.DBName)
		if err != nil {
			return nil, noop, err
		}
		return repo, func() { _ = repo.Close(context.Background()) }, nil
	default:
		return nil, noop, fmt.Errorf("driver desconocido %q", cfg.Storage.Driver)
	}
}
