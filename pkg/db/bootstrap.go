package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NeedsPairing reports whether no hub has been paired yet.
func (db *DB) NeedsPairing(ctx context.Context) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hubs`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count hubs: %w", err)
	}
	return count == 0, nil
}

// SaveHub records the result of a pairing. A hub with the same name is
// updated in place. The saved hub becomes the active one and gets the
// default API server config if it has none.
func (db *DB) SaveHub(ctx context.Context, h *Hub) error {
	if h.Port == 0 {
		h.Port = 8443
	}
	if h.APIVersion == "" {
		h.APIVersion = "v1"
	}
	return db.Tx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM hubs WHERE name = ?`, h.Name).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			result, err := tx.ExecContext(ctx, `
				INSERT INTO hubs (name, address, port, api_version, token, certificate)
				VALUES (?, ?, ?, ?, ?, ?)
			`, h.Name, h.Address, h.Port, h.APIVersion, h.Token, h.Certificate)
			if err != nil {
				return fmt.Errorf("failed to create hub: %w", err)
			}
			if id, err = result.LastInsertId(); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			_, err := tx.ExecContext(ctx, `
				UPDATE hubs SET address = ?, port = ?, api_version = ?, token = ?, certificate = ?,
					updated_at = datetime('now')
				WHERE id = ?
			`, h.Address, h.Port, h.APIVersion, h.Token, h.Certificate, id)
			if err != nil {
				return fmt.Errorf("failed to update hub: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, `UPDATE hubs SET is_active = (id = ?)`, id); err != nil {
			return fmt.Errorf("failed to activate hub: %w", err)
		}
		servers := &apiServerStore{q: tx}
		if _, err := servers.Get(ctx, id); errors.Is(err, ErrAPIServerNotFound) {
			if err := servers.Create(ctx, &APIServer{HubID: id, Host: defaultAPIHost, Port: defaultAPIPort}); err != nil {
				return err
			}
		} else if err != nil {
			return fmt.Errorf("failed to get API server config: %w", err)
		}

		h.ID = id
		h.IsActive = true
		return nil
	})
}
