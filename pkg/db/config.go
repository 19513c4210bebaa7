package db

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoActiveHub = errors.New("no paired hub; run dirigera-pair first")

const (
	defaultAPIHost = "0.0.0.0"
	defaultAPIPort = 8080
)

// Config is the runtime configuration stored for the active hub.
type Config struct {
	Hub       *Hub
	APIServer *APIServer
}

// APIAddress returns the REST bridge listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return (&APIServer{Host: defaultAPIHost, Port: defaultAPIPort}).Address()
	}
	return c.APIServer.Address()
}

// ActiveConfig loads the configuration of the active hub.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	h, err := db.Hubs().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrHubNotFound) {
			return nil, ErrNoActiveHub
		}
		return nil, fmt.Errorf("failed to get active hub: %w", err)
	}

	apiServer, err := db.APIServers().Get(ctx, h.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}
	return &Config{Hub: h, APIServer: apiServer}, nil
}
