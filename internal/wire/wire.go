// Package wire provides dependency injection for the hive application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/hive/internal/adapters/sqlite"
	"github.com/example/hive/internal/adapters/tmux"
	"github.com/example/hive/internal/app"
	"github.com/example/hive/internal/db"
	"github.com/example/hive/internal/ports/primary"
	"github.com/example/hive/internal/ports/secondary"
)

var (
	coordinationService primary.CoordinationService
	registryService     primary.RegistryService
	tmuxAdapter         secondary.TmuxAdapter
	once                sync.Once
)

// CoordinationService returns the singleton CoordinationService instance.
func CoordinationService() primary.CoordinationService {
	once.Do(initServices)
	return coordinationService
}

// RegistryService returns the singleton RegistryService instance.
func RegistryService() primary.RegistryService {
	once.Do(initServices)
	return registryService
}

// TmuxAdapter returns the singleton tmux adapter.
func TmuxAdapter() secondary.TmuxAdapter {
	once.Do(initServices)
	return tmuxAdapter
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	conversationRepo := sqlite.NewConversationRepository(database)
	messageRepo := sqlite.NewMessageRepository(database)
	viewRepo := sqlite.NewViewRepository(database)
	missionRepo := sqlite.NewMissionRepository(database)

	resolver := app.NewScopeResolver(missionRepo)

	coordinationService = app.NewCoordinationService(conversationRepo, messageRepo, viewRepo, resolver)
	registryService = app.NewRegistryService(missionRepo)
	tmuxAdapter = tmux.NewAdapter()
}
