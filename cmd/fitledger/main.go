package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/fitledger/internal/api"
	"github.com/terraincognita07/fitledger/internal/cli"
	"github.com/terraincognita07/fitledger/internal/config"
	"github.com/terraincognita07/fitledger/internal/db"
	"github.com/terraincognita07/fitledger/internal/logging"
)

const resetPasswordCommand = "reset-password"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, stderr io.Writer) error {
	cfg, warnings, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	for _, warning := range warnings {
		log.Warn(warning)
	}

	command, commandArgs := parseCommand(args)
	switch command {
	case "":
		return serve(cfg, log)
	case resetPasswordCommand:
		if len(commandArgs) != 1 {
			return fmt.Errorf("usage: fitledger %s <email>", resetPasswordCommand)
		}
		return cli.RunResetPasswordCommand(cfg.DBPath, commandArgs[0], stdout)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func parseCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return strings.TrimSpace(args[0]), args[1:]
}

func serve(cfg *config.Config, log *logrus.Logger) error {
	database, err := db.OpenSQLite(cfg.DBPath, logging.GormWriter{Logger: log})
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler, err := api.NewHandler(database, api.HandlerOptions{
		SecretKey:           cfg.SecretKey,
		Location:            cfg.Location,
		CookieSecure:        cfg.CookieSecure,
		RateLimitFailClosed: cfg.RateLimitFailClosed,
		LoginRatePerMinute:  cfg.LoginRatePerMinute,
		TokenTTL:            cfg.TokenTTL,
		Logger:              log,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, cfg, log)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"db":   cfg.DBPath,
		"tz":   cfg.Location.String(),
	}).Info("fitledger listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, cfg *config.Config, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "FitLedger",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		Output: log.WriterLevel(logrus.InfoLevel),
	}))
	app.Use(compress.New())
	app.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	api.RegisterRoutes(app, handler)
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})
	return app
}

// corsConfig allows credentials only for an explicit origin list.
func corsConfig(origins []string) cors.Config {
	settings := cors.Config{
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		AllowOrigins: "*",
	}
	if len(origins) > 0 {
		settings.AllowOrigins = strings.Join(origins, ",")
		settings.AllowCredentials = true
	}
	return settings
}
