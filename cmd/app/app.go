package app

import (
	"log"

	"contentapi/internal/config"
	"contentapi/internal/database"
	"contentapi/internal/repository"
)

// App wires config to storage and repositories. The returned database is
// nil for the in-memory backend. The mongo connection itself is dialed
// lazily on first use; a missing MONGODB_URI or DB_NAME surfaces as a
// ConfigurationError on every operation instead of crashing here.
func App(cfg *config.Config) (*database.Database, *repository.Repository) {
	if cfg.StorageBackend == config.BackendMemory {
		log.Println("using in-memory storage backend")
		return nil, repository.NewMemoryRepository()
	}

	db := database.New(cfg)
	return db, repository.NewRepository(db)
}
