package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbot/config"
	"slotbot/handlers"
	"slotbot/middleware"
	"slotbot/routes"
	"slotbot/services/agent"
	"slotbot/services/calendar"
	ai "slotbot/services/intelligence"
	"slotbot/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	loc, err := time.LoadLocation(config.AppConfig.Timezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid timezone %q: %v", config.AppConfig.Timezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Session store: Redis when configured, in-process otherwise.
	var store agent.SessionStore
	if config.AppConfig.RedisAddr != "" {
		ttl := time.Duration(config.AppConfig.SessionTTLMin) * time.Minute
		store = agent.NewRedisSessionStore(utils.GetSessionCacheClient(), ttl)
	} else {
		logger.Sugar().Info("main: REDIS_ADDR not set, using in-memory session store")
		store = agent.NewMemorySessionStore()
	}

	// Collaborators. If either fails to initialize the endpoint stays up
	// and answers with a service-unavailable reply.
	agentSvc := buildAgentService(loc, store)

	chatHandler := handlers.NewChatHandler(agentSvc)
	routes.RegisterRoutes(router, chatHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// buildAgentService assembles the model and calendar collaborators. A nil
// return means some collaborator could not be initialized.
func buildAgentService(loc *time.Location, store agent.SessionStore) agent.Service {
	logger := utils.GetLogger()
	ctx := context.Background()

	model, err := ai.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Errorf("main: failed to initialize Gemini client: %v", err)
		return nil
	}

	cal, err := calendar.NewGoogleService(ctx, calendar.GoogleOptions{
		CredentialsFile: config.AppConfig.GoogleCredentialsFile,
		TokenFile:       config.AppConfig.GoogleTokenFile,
		CalendarID:      config.AppConfig.GoogleCalendarID,
		Location:        loc,
		Timeout:         time.Duration(config.AppConfig.CalendarTimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Sugar().Errorf("main: failed to initialize Google Calendar service: %v", err)
		return nil
	}

	extractor := agent.NewExtractor(model, loc, time.Duration(config.AppConfig.ModelTimeoutSec)*time.Second)
	return agent.NewDefaultService(extractor, cal, store, loc)
}
