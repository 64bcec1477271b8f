package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/salonbelle/salon-scheduler/internal/audit"
	"github.com/salonbelle/salon-scheduler/internal/config"
	dbpkg "github.com/salonbelle/salon-scheduler/internal/db"
	"github.com/salonbelle/salon-scheduler/internal/expiry"
	infraRepo "github.com/salonbelle/salon-scheduler/internal/infra/repository"
	"github.com/salonbelle/salon-scheduler/internal/notify"
	"github.com/salonbelle/salon-scheduler/internal/routes"
	"github.com/salonbelle/salon-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	hub := notify.NewHub()

	loc := timezone.Location(cfg.SalonTimezone)

	sweeper := expiry.NewSweeper(
		infraRepo.NewReservationGormRepository(db),
		audit.NewDispatcher(audit.New(db)),
		hub,
		loc,
		time.Duration(cfg.ExpirySweepMinutes)*time.Minute,
	)
	sweeper.Start()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, hub, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
