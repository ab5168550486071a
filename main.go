package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/tonytani37/votes-for-players/cache"
	"github.com/tonytani37/votes-for-players/config"
	"github.com/tonytani37/votes-for-players/controller"
	"github.com/tonytani37/votes-for-players/db"
	"github.com/tonytani37/votes-for-players/playerapi"
	"github.com/tonytani37/votes-for-players/search"
	"github.com/tonytani37/votes-for-players/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("error reading settings: %v", err)
	}

	event, err := config.Load(settings.EventConfig)
	if err != nil {
		log.Fatalf("error loading event config %s: %v", settings.EventConfig, err)
	}

	apiClient, err := playerapi.New(playerapi.Endpoints{
		PlayersURL: event.PlayersURL,
		RankingURL: event.RankingURL,
		VoteURL:    event.VoteURL,
		APIKey:     event.APIKey,
	}, settings.HTTPTimeout)
	if err != nil {
		log.Fatalf("error creating player api client: %v", err)
	}

	ctx := context.Background()
	clock := clock.New()

	sessionCache := cache.NewMemory(settings.CacheSize, settings.CacheTTL)
	if settings.RedisURL != "" {
		redisClient, err := cache.Dial(ctx, settings.RedisURL)
		if err != nil {
			log.Fatalf("cannot connect to redis: %v", err)
		}
		defer redisClient.Close()
		sessionCache = cache.NewRedis(redisClient, settings.CacheTTL)
	}

	// The vote ledger is optional, without a connection string votes only go upstream.
	var ledger db.DB
	if settings.PostgresConn != "" {
		ledger, err = db.New(ctx, settings.PostgresConn, clock)
		if err != nil {
			log.Fatalf("cannot connect to DB: %v", err)
		}
	}

	ctrl, err := controller.New(clock, event, apiClient, sessionCache, ledger, controller.Options{
		Search:         search.ParseOptions(settings.NameVariant, settings.NumberMatch),
		ImageURLPrefix: settings.ImageURLPrefix,
	})
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(web.Options{
		Port:        settings.Port,
		CORSOrigins: settings.CORSOrigins,
		StaticDir:   settings.StaticDir,
	}, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	log.Printf("loaded %d matches, ledger enabled: %t", len(event.Matches), ctrl.LedgerEnabled())

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
