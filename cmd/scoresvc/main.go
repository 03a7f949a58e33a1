package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	config "github.com/HariTharun21/Gully-cricket-web-app/configs"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/nats"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/broker"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/db"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/handlers"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/service"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/store"
)

const SERVICE_NAME = "score"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	userStore := store.NewUserStore(dbpool)
	playerStore := store.NewPlayerStore(dbpool)
	teamStore := store.NewTeamStore(dbpool)
	matchStore := store.NewMatchStore(dbpool)
	accessStore := store.NewAccessStore(dbpool)
	scoringStore := store.NewScoringStore(dbpool)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	feed := broker.NewBroker(n.Conn)

	gate := service.NewPermissionService(accessStore, userStore)
	userService := service.NewUserService(userStore)
	playerService := service.NewPlayerService(playerStore, gate)
	teamService := service.NewTeamService(teamStore, playerStore, gate)
	matchService := service.NewMatchService(matchStore, teamStore, gate)
	tossService := service.NewTossService(matchStore, scoringStore, gate)
	scoringService := service.NewScoringService(scoringStore, matchStore, playerStore, teamStore, gate, feed)
	accessService := service.NewAccessService(accessStore, matchStore, playerStore, teamStore, gate)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(userService, playerService, teamService,
		matchService, tossService, scoringService, accessService)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("SCORE_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
