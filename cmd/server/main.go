package main

import (
	"context"
	"log"

	"bus-ticketing-backend/config"
	"bus-ticketing-backend/internal/cache"
	"bus-ticketing-backend/internal/database"
	"bus-ticketing-backend/internal/handler"
	"bus-ticketing-backend/internal/queue"
	"bus-ticketing-backend/internal/repository"
	"bus-ticketing-backend/internal/service"
	"bus-ticketing-backend/internal/worker"
	"bus-ticketing-backend/migrations"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	if err := migrations.Apply(context.Background(), pool); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	inventoryCache := cache.NewVoyageInventoryCache(rdb)

	reconcileQueue, err := queue.NewRedisStreamReconcileQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize reconcile queue: %v", err)
	}

	inventoryRepo := repository.NewVoyageInventoryRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)

	inventoryService := service.NewInventoryService(pool, inventoryRepo, seatRepo, inventoryCache)
	bookingService := service.NewBookingService(pool, inventoryRepo, seatRepo, ticketRepo, passengerRepo, inventoryCache, reconcileQueue)
	ticketService := service.NewTicketService(ticketRepo, inventoryRepo, bookingService)
	passengerService := service.NewPassengerService(passengerRepo, inventoryRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reconcileWorker := worker.NewReconcileWorker(inventoryService, reconcileQueue)
	if err := reconcileWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start reconcile worker: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewInventoryHandler(inventoryService).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router)
	handler.NewTicketHandler(ticketService).RegisterRoutes(router)
	handler.NewPassengerHandler(passengerService).RegisterRoutes(router)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
