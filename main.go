package main

import (
	"errors"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/finansmart/backend/internal/auth"
	"github.com/finansmart/backend/internal/budgeting"
	"github.com/finansmart/backend/internal/config"
	v1 "github.com/finansmart/backend/internal/controllers/v1"
	"github.com/finansmart/backend/internal/dashboard"
	"github.com/finansmart/backend/internal/events"
	"github.com/finansmart/backend/internal/models"
	"github.com/finansmart/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// A .env file is optional, the environment always wins
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	cfg := config.Load()

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	err = cfg.Validate()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	apiURL, _ := url.Parse(cfg.APIURL)

	// Connect to the database
	var dialector gorm.Dialector
	if cfg.UsePostgres() {
		dialector = models.Postgres(cfg.PostgresDSN())
	} else {
		err = os.MkdirAll(filepath.Dir(cfg.SQLitePath), os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		dialector = models.SQLite(cfg.SQLitePath)
	}

	db, err := models.Connect(dialector)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Budget changes are only published when a broker is configured
	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		defer amqpPublisher.Close()

		publisher = amqpPublisher
	}

	r, teardown, err := router.Config(apiURL, cfg.CORSAllowOrigins)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	controller := v1.Controller{
		DB:        db,
		Budgets:   budgeting.NewService(db, publisher),
		Dashboard: dashboard.NewService(db, dashboard.WithLocale(cfg.LocaleTag())),
	}

	// The API is served under the path of the API URL
	router.AttachRoutes(controller, auth.NewHMACVerifier(cfg.JWTSecret, cfg.JWTIssuer), r.Group(apiURL.Path), cfg.EnablePprof)

	log.Info().Str("url", cfg.APIURL).Str("port", cfg.Port).Msg("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error().Msg(err.Error())
	}
}
