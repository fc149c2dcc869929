package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/blog-site/api"
	"github.com/rpupo63/blog-site/config"
	"github.com/rpupo63/blog-site/database"
	"github.com/rpupo63/blog-site/models"
	"github.com/rpupo63/blog-site/seed"
)

func main() {
	seedFlag := flag.Bool("seed", false, "fill an empty database with demo data before serving")
	seedOnly := flag.Bool("seed-only", false, "seed demo data and exit")
	flag.Parse()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	log.Info().Msg("Initializing app...")

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	if cfg.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error migrating database")
		}
	}

	currentDB := database.New(db)

	if *seedFlag || *seedOnly || cfg.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		_, err := seed.New(currentDB).Run(ctx, seed.DefaultOptions())
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Error seeding demo data")
		}
		if *seedOnly {
			return
		}
	}

	// Buffered so the server goroutine can still report ErrServerClosed after shutdown.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(cfg, currentDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
