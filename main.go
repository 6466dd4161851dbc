package main

import (
	"CasaFacil/ai"
	"CasaFacil/config"
	"CasaFacil/handlers"
	"CasaFacil/mq"
	"CasaFacil/obs"
	"CasaFacil/repository"
	"CasaFacil/routes"
	"CasaFacil/services"
	"CasaFacil/session"
	"CasaFacil/utils"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, "casafacil", cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		log.Fatalf("tracer: %v", err)
	}

	client, db, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	log.Println("Connected to MongoDB")

	users := repository.NewUsers(db, cfg.UsersCollection)
	properties := repository.NewProperties(db, cfg.PropertiesCollection)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("users indexes: %v", err)
	}
	if err := properties.EnsureIndexes(ctx); err != nil {
		log.Fatalf("properties indexes: %v", err)
	}
	images := repository.NewImages(db, cfg.ImagesBucket)

	rdb := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s: %v", cfg.RedisAddr, err)
	} else {
		log.Println("Connected to Redis")
	}
	listingCache := repository.NewListingCache(rdb, cfg.ListingCacheTTL)
	searches := repository.NewSearchCounter(rdb)

	var events mq.Publisher = mq.Discard{}
	if cfg.RabbitMQURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitMQURL, cfg.EventsExchange)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		events = pub
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())
	identity := services.NewIdentity(users, repository.NewRevocations(rdb), tokens)
	sessions := session.NewRegistry(users, cfg.TokenTTL(), 0)
	identity.Subscribe(sessions.HandleSessionEvent)

	chatAI, err := ai.New(cfg.AIProvider, cfg.AI())
	if err != nil {
		log.Fatalf("ai: %v", err)
	}
	publishAI, err := ai.New(cfg.AIPublishProvider, cfg.AI())
	if err != nil {
		log.Fatalf("ai: %v", err)
	}
	chatAI = ai.Traced(cfg.AIProvider, chatAI)
	publishAI = ai.Traced(cfg.AIPublishProvider, publishAI)

	propertyController := handlers.NewPropertyController(properties, listingCache, sessions, searches, events)
	controllers := routes.Controllers{
		Auth:       handlers.NewAuthController(identity, sessions),
		Properties: propertyController,
		Dashboard:  handlers.NewDashboardController(propertyController),
		Assistant:  handlers.NewAssistantController(chatAI, sessions),
		Images:     handlers.NewImageController(images),
		Admin:      handlers.NewAdminController(users, properties, searches),
		AI:         handlers.NewAIController(chatAI),
		PublishAI:  handlers.NewAIController(publishAI),
	}

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Env == "dev"

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("6M"))

	routes.RegisterRoutes(e, identity, controllers)

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	sessions.Stop()
	if err := events.Close(); err != nil {
		log.Printf("rabbitmq close: %v", err)
	}
	if err := rdb.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Printf("tracer shutdown: %v", err)
	}
}
