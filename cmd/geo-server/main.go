// Package main is the entry point for the GeoMonedas game server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/engine"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/events"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/infra/storage"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/network"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/config"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/logger"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/metrics"
)

// SQLitePersisterAdapter translates domain events to storage events.
type SQLitePersisterAdapter struct {
	repo *storage.SQLiteEventRepository
}

func (a *SQLitePersisterAdapter) Append(event events.GameEvent) error {
	return a.repo.Append(context.Background(), storage.StoredEvent{
		ID:        event.ID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		CellKey:   event.CellKey,
		Payload:   event.Payload,
	})
}

// WorldStoreAdapter connects the engine's snapshot bridge to the
// SQLite blob store.
type WorldStoreAdapter struct {
	eng    *engine.Engine
	repo   *storage.SQLiteSnapshotRepository
	slot   string
	logger *logger.Logger
}

// SaveWorld serializes the current world into the snapshot slot.
func (s *WorldStoreAdapter) SaveWorld(ctx context.Context) error {
	data, err := s.eng.SnapshotJSON()
	metrics.Get().RecordSnapshotSave(err)
	if err != nil {
		return err
	}
	return s.repo.Upsert(ctx, s.slot, string(data))
}

// LoadWorld restores the world from the snapshot slot. A missing or
// malformed snapshot is not fatal: the world stays as it is and the
// caller decides whether to start fresh.
func (s *WorldStoreAdapter) LoadWorld(ctx context.Context) error {
	blob, found, err := s.repo.Load(ctx, s.slot)
	if err != nil {
		return err
	}
	if !found {
		s.logger.Info("No saved world in slot '" + s.slot + "'")
		return nil
	}
	return s.eng.RestoreJSON([]byte(blob))
}

// bootstrapWorld loads the saved world or starts a fresh one at the
// configured start position.
func bootstrapWorld(ctx context.Context, store *WorldStoreAdapter, eng *engine.Engine, start geo.Point, appLogger *logger.Logger) {
	appLogger.Info("Checking DB for a saved world...")
	blob, found, err := store.repo.Load(ctx, store.slot)
	if err != nil {
		appLogger.Error("Failed to query DB for saved world: " + err.Error())
	}
	if found {
		restoreErr := eng.RestoreJSON([]byte(blob))
		if restoreErr == nil {
			appLogger.Info("World restored from saved snapshot")
			return
		}
		// A corrupted save counts as no save at all.
		appLogger.Warn("Saved world is unreadable, starting fresh: " + restoreErr.Error())
	} else {
		appLogger.Info("Database empty. Seeding a fresh world...")
	}
	eng.MovePlayer(start)
}

// autosave periodically persists the world, in the spirit of the
// original game writing through to storage on every change.
func autosave(ctx context.Context, store *WorldStoreAdapter, interval time.Duration, appLogger *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			appLogger.Info("Autosave stopped by context.")
			return
		case <-ticker.C:
			if err := store.SaveWorld(ctx); err != nil {
				appLogger.Error("Autosave failed: " + err.Error())
			}
		}
	}
}

func main() {
	log.Println("[GEO-SERVER] Initializing 'GeoMonedas' Authoritative Server...")

	appLogger := logger.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		appLogger.Error("Failed to load configuration: " + err.Error())
		os.Exit(1)
	}

	appLogger.Info("Initializing SQLite database '" + cfg.DBPath + "'...")
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: " + err.Error())
		os.Exit(1)
	}
	eventRepo := storage.NewSQLiteEventRepository(db)
	eventPersister := &SQLitePersisterAdapter{repo: eventRepo}

	appLogger.Info("Bootstrapping EventLog...")
	eventLog := events.NewEventLog(eventPersister)

	appLogger.Info("Bootstrapping World Engine...")
	gameEngine := engine.NewEngine(engine.Config{
		Origin:           geo.Point{Lat: cfg.OriginLat, Lng: cfg.OriginLng},
		CellSizeDegrees:  cfg.CellSizeDegrees,
		VisibilityRadius: cfg.VisibilityRadius,
		SpawnProbability: cfg.SpawnProbability,
		MaxCoinsPerCache: cfg.MaxCoinsPerCache,
		Start:            geo.Point{Lat: cfg.StartLat, Lng: cfg.StartLng},
	}, eventLog, appLogger)

	snapRepo := storage.NewSQLiteSnapshotRepository(db)
	worldStore := &WorldStoreAdapter{eng: gameEngine, repo: snapRepo, slot: cfg.SaveSlot, logger: appLogger}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := network.NewHub(gameEngine, worldStore, appLogger)
	gameEngine.SetPresenter(network.NewHubPresenter(hub, gameEngine.Board()))
	go hub.Run(ctx)

	bootstrapWorld(ctx, worldStore, gameEngine, geo.Point{Lat: cfg.StartLat, Lng: cfg.StartLng}, appLogger)

	go autosave(ctx, worldStore, cfg.AutosaveInterval, appLogger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		network.ServeWS(hub, w, r)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", metrics.Handler())

	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	go func() {
		appLogger.Info("Listening on " + cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed: " + err.Error())
			cancel()
		}
	}()

	// Graceful shutdown: save the world one last time before exit.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down, saving world...")
	if err := worldStore.SaveWorld(context.Background()); err != nil {
		appLogger.Error("Final save failed: " + err.Error())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
	cancel()
	appLogger.Info("Server stopped.")
}
