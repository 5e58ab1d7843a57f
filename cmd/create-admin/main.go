package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"recrent-shop/internal/config"
	"recrent-shop/internal/database"
	"recrent-shop/internal/logger"
	"recrent-shop/internal/repository"
	"recrent-shop/internal/service"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	username := pflag.StringP("username", "u", cfg.Admin.Username, "admin username (defaults to ADMIN_USERNAME)")
	password := pflag.StringP("password", "p", cfg.Admin.Password, "admin password (defaults to ADMIN_PASSWORD)")
	status := pflag.Bool("migration-status", false, "print the migration status and exit")
	pflag.Parse()

	if !*status && (*username == "" || *password == "") {
		fmt.Fprintln(os.Stderr, "usage: create-admin --username <name> --password <password>")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer dbService.Close()

	if *status {
		if err := database.GetMigrationStatus(dbService.DB()); err != nil {
			log.Fatal("Failed to read migration status", zap.Error(err))
		}
		return
	}

	if err := database.RunMigrations(dbService.DB(), log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := service.NewAuthService(
		repository.NewAdminUserRepository(dbService.DB()),
		service.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry),
	)
	created, err := auth.EnsureAdmin(ctx, *username, *password)
	if err != nil {
		log.Fatal("Failed to create admin user", zap.Error(err))
	}

	if created {
		log.Info("Admin user created", zap.String("username", *username))
	} else {
		log.Info("Admin password reset", zap.String("username", *username))
	}
}
