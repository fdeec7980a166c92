package main

import (
	"context"
	"log"

	"notepocket/internal/bootstrap"
	"notepocket/internal/config"
	"notepocket/internal/persistence"
	"notepocket/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Local Storage
	stateStore, err := persistence.NewBoltStateStore(cfg.Storage.Path)
	if err != nil {
		log.Panicf("Unable to open local storage: %v", err)
	}
	defer stateStore.Close()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(stateStore, cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	if err := container.PersistService.Consume(context.Background()); err != nil {
		log.Panicf("Unable to start persistence consumer: %v", err)
	}

	// 5. Hydrate Stores (must finish before any note data is served)
	container.Hydrate(context.Background())

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
