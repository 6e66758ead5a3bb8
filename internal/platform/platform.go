package platform

import (
	"fmt"
	"log"
	"os"

	"github.com/brightdesk/brightdesk/internal/app/gamify"
	"github.com/brightdesk/brightdesk/internal/domain"
	"github.com/brightdesk/brightdesk/internal/infra/sqlite"
)

// Platform bundles the wired services behind one handle.
type Platform struct {
	Config Config
	Store  *sqlite.DB
	Gamify *gamify.Service
}

// Open loads configuration, opens the store, and wires the engine.
// dir is the enrollment directory collaborator; nil disables class
// scoping and display-name resolution.
func Open(dir domain.Directory) (*Platform, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Store.Dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := sqlite.Open(cfg.Store.Dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	svc, err := gamify.New(store, cfg.Gamify, dir)
	if err != nil {
		store.Close()
		return nil, err
	}

	log.Printf("[platform] ready, store=%s", cfg.Store.Dir)
	return &Platform{Config: cfg, Store: store, Gamify: svc}, nil
}

// Close releases the store handle.
func (p *Platform) Close() error {
	return p.Store.Close()
}
