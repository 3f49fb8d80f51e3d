package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/merylgrace/alumni-coordinator/internal/config"
	"github.com/merylgrace/alumni-coordinator/internal/db"
	"github.com/merylgrace/alumni-coordinator/internal/geo"
	"github.com/merylgrace/alumni-coordinator/internal/handlers"
	"github.com/merylgrace/alumni-coordinator/internal/models"
	"github.com/merylgrace/alumni-coordinator/internal/router"
	"github.com/merylgrace/alumni-coordinator/internal/store"
	"github.com/merylgrace/alumni-coordinator/internal/verify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("logger: ", err)
	}
	defer logger.Sync()

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	logger.Info("connected to database")

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis url", zap.Error(err))
		}
		rdb = redis.NewClient(opts)
	} else {
		logger.Warn("REDIS_URL not set; geocode results will not be cached")
	}

	if err := seedAdmin(gdb, cfg); err != nil {
		logger.Fatal("seed admin", zap.Error(err))
	}

	st := store.New(gdb, logger)
	h := &handlers.Handler{
		DB:              gdb,
		Log:             logger,
		Verifier:        verify.NewService(st, st, logger),
		Audit:           st,
		Geocoder:        geo.New(rdb, cfg.GeocoderBaseURL, cfg.GeocodeCacheTTL, logger),
		FrontendBaseURL: cfg.FrontendBaseURL,
	}

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router.RegisterRouter(h, logger)); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}

// seedAdmin provisions the bootstrap admin account when configured and absent.
func seedAdmin(gdb *gorm.DB, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPass == "" {
		return nil
	}
	var existing models.AdminUser
	err := gdb.Where("email = ?", cfg.SeedAdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return gdb.Create(&models.AdminUser{
		Email:        cfg.SeedAdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}).Error
}
