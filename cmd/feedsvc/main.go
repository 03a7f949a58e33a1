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
	"github.com/HariTharun21/Gully-cricket-web-app/internal/feedsvc/archive"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/feedsvc/broker"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/feedsvc/routes"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/feedsvc/ws"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/nats"
	scorebroker "github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/broker"
)

const SERVICE_NAME = "feed"

func init() {
	instanceId := "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// mongo keeps the recent score events for late joiners
	mongoDb, cancelDb, err := archive.ConnectToDB()
	if err != nil {
		log.Errorf("Error: unable to connect to MongoDB %v", err)
		os.Exit(0)
	}
	defer cancelDb()
	store := archive.New(mongoDb)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Initialize websocket handler
	s := ws.NewWs()
	s.Archive = store

	// Initialize routes
	routes.SetRoutes(r, s)

	// Consume score updates from the score service
	b := broker.NewBroker(n.Conn, store, s.BroadcastScore)

	sub, err := b.Subscribe(scorebroker.ScoreSubject)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	// announce liveness so operators can watch feed instances
	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	hbStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := b.PublishHeartbeat(instanceId); err != nil {
					log.Errorf("heartbeat publish failed: %v", err)
				}
			case <-hbStop:
				return
			}
		}
	}()

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("FEED_SERVICE_PORT"),
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

	close(hbStop)
	if err := b.PublishShutdown(instanceId); err != nil {
		log.Errorf("shutdown publish failed: %v", err)
	}
	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
