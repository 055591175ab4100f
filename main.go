package main

import (
	"fmt"
	"log"

	"github.com/Ankit-repo-24/BahhiKhata/internal/config"
	"github.com/Ankit-repo-24/BahhiKhata/internal/database"
	"github.com/Ankit-repo-24/BahhiKhata/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// optional .env for local development; deployments set real env vars
	_ = godotenv.Load()

	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("Bahhi-Khata API listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
