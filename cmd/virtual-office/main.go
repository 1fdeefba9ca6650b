package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/harshala334/virtual-office/internal/api"
	"github.com/harshala334/virtual-office/internal/config"
	"github.com/harshala334/virtual-office/internal/media"
	"github.com/harshala334/virtual-office/internal/notify"
	"github.com/harshala334/virtual-office/internal/presence"
	"github.com/harshala334/virtual-office/internal/repository"
	"github.com/harshala334/virtual-office/internal/service"
	"github.com/harshala334/virtual-office/internal/web"
)

func main() {
	// Load configuration from the environment
	redisConfig := config.GetRedisConfig()
	policy := config.GetPolicyConfig()
	serverConfig := config.GetServerConfig()

	// Initialize the repository using the factory
	repo, err := repository.NewRepository(redisConfig)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Check if we're using a Redis repository, and if so, close it properly on exit
	if redisRepo, ok := repo.(interface{ Close() error }); ok {
		defer func() {
			if err := redisRepo.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
		}()
	}

	// Load the room directory snapshot before serving requests
	store := service.NewRoomStore(repo, policy)
	if err := store.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load room directory: %v", err)
	}

	// Presence updates travel over Redis pub/sub when available so that
	// separate instances see each other; otherwise they stay in-process
	var bus presence.Bus
	if redisConfig.Enabled {
		redisBus, err := presence.NewRedisBus(redisConfig)
		if err != nil {
			log.Fatalf("Failed to initialize presence bus: %v", err)
		}
		defer redisBus.Close()
		bus = redisBus
	} else {
		bus = presence.NewMemoryBus()
	}

	notifier := notify.LogNotifier{}
	meeting := service.NewMeetingState(media.NewSimulatedProvider(), notifier)
	syncer := presence.NewSynchronizer(bus, uuid.NewString())

	var simulator *presence.Simulator
	if policy.SimulatePeers {
		simulator = presence.NewSimulator(bus, policy.PeerDelay)
	}

	session := service.NewSessionController(store, meeting, syncer, notifier, policy, simulator)

	// Push directory changes to connected browsers
	sseManager := web.NewSSEManager(store)
	store.RegisterUpdateCallback(sseManager.NotifyRoomUpdate)

	// Set up API routes
	mux := api.SetupRoutes(repo, store, session, meeting)
	mux.Handle("/events", sseManager)

	// Configure the HTTP server
	server := &http.Server{
		Addr:         ":" + serverConfig.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disable write timeout for SSE connections
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Printf("Starting virtual-office server on port %s", serverConfig.Port)
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until a signal is received or an error occurs
	select {
	case err := <-serverErrors:
		log.Fatalf("Error starting server: %v", err)

	case <-shutdown:
		log.Println("Shutting down server...")

		// Announce our departure so other contexts drop us from their rosters
		leaveCtx, leaveCancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := session.Leave(leaveCtx); err != nil {
			log.Printf("Error leaving active room: %v", err)
		}
		leaveCancel()

		// Close SSE connections before stopping the listener
		sseManager.Close()

		// Create a deadline to wait for
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Doesn't block if there are no connections, but will otherwise
		// wait until the timeout deadline.
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			log.Fatalf("Error shutting down server: %v", err)
		}

		log.Println("Server gracefully stopped")
	}
}
