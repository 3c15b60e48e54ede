package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nhle/todo-mock-api/internal/api"
	"github.com/nhle/todo-mock-api/internal/config"
	"github.com/nhle/todo-mock-api/internal/model"
	"github.com/nhle/todo-mock-api/internal/state"
	"github.com/nhle/todo-mock-api/internal/storage"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to the YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	initial, err := loadSeed(cfg.Seed)
	if err != nil {
		log.Fatalf("loading seed state: %v", err)
	}

	adapter, err := buildAdapter(cfg, initial)
	if err != nil {
		log.Fatalf("opening storage: %v", err)
	}

	store, err := state.New(state.Options{Adapter: adapter, Initial: initial})
	if err != nil {
		// Corrupted persisted state refuses to start; delete the database
		// file to reset.
		log.Fatalf("initializing state: %v", err)
	}

	handler := api.New(store, api.Options{
		CORSOrigins: cfg.CORS.Origins,
		LogRequests: cfg.LogRequests,
	})

	log.Printf("todo mock API listening on %s (storage: %s)", cfg.Addr, cfg.Storage.Driver)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}

// buildAdapter selects the persistence backend. The memory adapter must be
// seeded at construction: it ignores writes, so a later write-through of
// the initial state would be lost.
func buildAdapter(cfg *config.ServerConfig, initial *model.GlobalState) (storage.Adapter, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return storage.NewMemoryAdapter(initial), nil
	case "sqlite":
		dir := filepath.Dir(cfg.Storage.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating state directory %s: %w", dir, err)
		}
		return storage.NewSQLiteAdapter(cfg.Storage.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func loadSeed(path string) (*model.GlobalState, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var initial model.GlobalState
	if err := json.Unmarshal(raw, &initial); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &initial, nil
}
