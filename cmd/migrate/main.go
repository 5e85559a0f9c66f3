package main

import (
	"log"

	"github.com/namishh/bubble/config"
	"github.com/namishh/bubble/store"
)

func main() {
	config.LoadEnv()
	if err := config.ValidateDatabaseConfig(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	cfg := config.Load()
	db, err := store.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("migration completed")
}
