package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/patelshaan/imposter/internal/auth"
	"github.com/patelshaan/imposter/internal/config"
	"github.com/patelshaan/imposter/internal/game"
	"github.com/patelshaan/imposter/internal/handler"
	"github.com/patelshaan/imposter/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "github.com/patelshaan/imposter/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		return store.NewMemory(cfg.TxnRetries), nil
	case "postgres":
		return store.NewPostgres(cfg.DatabaseURL, cfg.TxnRetries, cfg.PollInterval)
	case "mongo":
		return store.NewMongo(context.Background(), cfg.MongoURI, cfg.MongoDatabase, cfg.TxnRetries)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// @title           Imposter API
// @version         1.0
// @description     Room coordination API for the imposter party game.
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	st, err := openStore(config.AppConfig)
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}
	log.Printf("State store ready (driver: %s)", config.AppConfig.StoreDriver)

	service := game.NewService(st, game.Config{
		OpTimeout:   config.AppConfig.OpTimeout,
		CodeRetries: config.AppConfig.CodeRetries,
	})
	rooms := handler.NewRoomHandler(service)

	router := gin.Default()
	router.Use(cors.Default())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	apiV1.Use(auth.IdentityMiddleware())
	{
		roomRoutes := apiV1.Group("/rooms")
		{
			roomRoutes.POST("", rooms.CreateRoom)
			roomRoutes.GET("", rooms.ListOpenRooms)
			roomRoutes.GET("/:code", rooms.GetRoom)
			roomRoutes.POST("/:code/join", rooms.JoinRoom)
			roomRoutes.POST("/:code/leave", rooms.LeaveRoom)
			roomRoutes.DELETE("/:code/members/:playerID", rooms.KickMember)
			roomRoutes.PUT("/:code/config", rooms.UpdateRoomConfig)
			roomRoutes.POST("/:code/start", rooms.StartGame)
			roomRoutes.POST("/:code/hints", rooms.SendHint)
			roomRoutes.GET("/:code/watch", rooms.WatchRoom)
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ListenAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ListenAddr))
}
