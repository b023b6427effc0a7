package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"memories-backend/internal/config"
	"memories-backend/internal/db"
	"memories-backend/internal/handlers"
	"memories-backend/internal/services"
	"memories-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// New builds the Fiber app. The handle may still be not ready; data routes
// then answer 503 until it connects.
func New(cfg *config.Config, log zerolog.Logger, handle *db.Handle, files *uploads.Storage) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "memories",
		BodyLimit:             cfg.BodyLimit(),
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	// Middleware
	if cfg.RequestLogging {
		app.Use(logger.New(logger.Config{Output: log}))
	}
	app.Use(recover.New())
	app.Use(cors.New())

	if info, err := os.Stat(cfg.PublicDir); err == nil && info.IsDir() {
		app.Static("/", cfg.PublicDir)
	}

	// Services
	hub := handlers.NewHub(log)
	auth := services.NewAuthService(services.AuthConfig{
		Password:     cfg.AppPassword,
		PasswordHash: cfg.AppPasswordHash,
		IssueTokens:  cfg.RequireWriteAuth,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
	})
	if !auth.Configured() {
		log.Warn().Msg("APP_PASSWORD is not set, every login will be rejected")
	}
	albums := services.NewAlbumService(handle, files, hub)
	timeline := services.NewTimelineService(handle, files, hub)
	notes := services.NewNoteService(handle, hub)

	var writeGuard []fiber.Handler
	if cfg.RequireWriteAuth {
		writeGuard = append(writeGuard, handlers.RequireWriteToken(auth))
	}
	write := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, writeGuard...), h)
	}

	// Routes
	app.Post("/login", handlers.LoginHandler(auth, log))

	app.Get("/photos", handlers.ListPhotosHandler(albums, log))
	app.Get("/timeline", handlers.ListTimelineHandler(timeline, log))
	if cfg.EnableUploads {
		app.Post("/photos", write(handlers.CreatePhotoHandler(albums, log))...)
		app.Post("/timeline", write(handlers.CreateTimelineHandler(timeline, log))...)
	}

	app.Get("/notes", handlers.ListNotesHandler(notes, log))
	app.Post("/notes", write(handlers.CreateNoteHandler(notes, log))...)

	app.Get("/health", handlers.HealthHandler)
	app.Get("/ready", handlers.ReadyHandler(handle, log))

	if cfg.EnableLiveFeed {
		app.Use("/ws", handlers.WSUpgradeMiddleware)
		app.Get("/ws", handlers.WebSocketHandler(hub, log))
	}

	if cfg.ServeAssets {
		app.Get("/"+uploads.PathPrefix+"/*", handlers.AssetGuard(files))
		app.Static("/"+uploads.PathPrefix, files.Dir(), fiber.Static{
			ByteRange: true,
			MaxAge:    cfg.AssetMaxAge,
		})
	}

	app.Use(handlers.NotFoundHandler)
	return app
}

// Run serves until SIGINT or SIGTERM. A database that cannot be reached at
// boot does not stop the server.
func Run(cfg *config.Config, log zerolog.Logger) error {
	open, err := db.OpenerFor(cfg)
	if err != nil {
		return err
	}

	files, err := uploads.NewStorage(cfg.UploadDir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle := db.NewHandle()
	go func() {
		_ = handle.Connect(ctx, open, db.ConnectOptions{
			Retries: cfg.DBConnectRetries,
			Timeout: cfg.DBConnectTimeout,
		}, log.With().Str("driver", cfg.DBDriver).Logger())
	}()

	app := New(cfg, log, handle, files)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		errCh <- app.Listen(cfg.Addr())
	}()

	// Graceful Shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("gracefully shutting down")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
			return err
		}
	}

	cancel()
	if err := app.ShutdownWithTimeout(cfg.ShutdownWait); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.ShutdownWait)
	defer closeCancel()
	if err := handle.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}

	log.Info().Msg("server shutdown complete")
	return nil
}

func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := http.StatusInternalServerError
		msg := http.StatusText(code)

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			code = ferr.Code
			msg = ferr.Message
		} else {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("unhandled error")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(msg)
	}
}
