package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrHubNotFound = errors.New("hub not found")

// Hub is a paired hub and the credentials for reaching it.
type Hub struct {
	ID          int64
	Name        string
	Address     string
	Port        int
	APIVersion  string
	Token       string
	Certificate string // PEM; empty accepts any certificate
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HubStore provides hub CRUD operations.
type HubStore interface {
	Get(ctx context.Context, id int64) (*Hub, error)
	GetByName(ctx context.Context, name string) (*Hub, error)
	GetActive(ctx context.Context) (*Hub, error)
	List(ctx context.Context) ([]*Hub, error)
	Create(ctx context.Context, h *Hub) error
	Update(ctx context.Context, h *Hub) error
	SetActive(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// Hubs returns a HubStore for this database.
func (db *DB) Hubs() HubStore {
	return &hubStore{db: db}
}

type hubStore struct {
	db *DB
}

const hubColumns = `id, name, address, port, api_version, token, certificate, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHub(row rowScanner) (*Hub, error) {
	h := &Hub{}
	var createdAt, updatedAt string
	err := row.Scan(&h.ID, &h.Name, &h.Address, &h.Port, &h.APIVersion, &h.Token,
		&h.Certificate, &h.IsActive, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHubNotFound
	}
	if err != nil {
		return nil, err
	}
	h.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	h.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return h, nil
}

func (s *hubStore) Get(ctx context.Context, id int64) (*Hub, error) {
	return scanHub(s.db.QueryRowContext(ctx, `SELECT `+hubColumns+` FROM hubs WHERE id = ?`, id))
}

func (s *hubStore) GetByName(ctx context.Context, name string) (*Hub, error) {
	return scanHub(s.db.QueryRowContext(ctx, `SELECT `+hubColumns+` FROM hubs WHERE name = ?`, name))
}

func (s *hubStore) GetActive(ctx context.Context) (*Hub, error) {
	return scanHub(s.db.QueryRowContext(ctx, `SELECT `+hubColumns+` FROM hubs WHERE is_active = 1 LIMIT 1`))
}

func (s *hubStore) List(ctx context.Context) ([]*Hub, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+hubColumns+` FROM hubs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var hubs []*Hub
	for rows.Next() {
		h, err := scanHub(rows)
		if err != nil {
			return nil, err
		}
		hubs = append(hubs, h)
	}
	return hubs, rows.Err()
}

func (s *hubStore) Create(ctx context.Context, h *Hub) error {
	if h.Port == 0 {
		h.Port = 8443
	}
	if h.APIVersion == "" {
		h.APIVersion = "v1"
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO hubs (name, address, port, api_version, token, certificate, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, h.Name, h.Address, h.Port, h.APIVersion, h.Token, h.Certificate, h.IsActive)
	if err != nil {
		return fmt.Errorf("failed to create hub: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = id
	return nil
}

func (s *hubStore) Update(ctx context.Context, h *Hub) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE hubs SET name = ?, address = ?, port = ?, api_version = ?, token = ?,
			certificate = ?, is_active = ?, updated_at = datetime('now')
		WHERE id = ?
	`, h.Name, h.Address, h.Port, h.APIVersion, h.Token, h.Certificate, h.IsActive, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update hub: %w", err)
	}
	return requireRow(result, ErrHubNotFound)
}

// SetActive makes id the only active hub.
func (s *hubStore) SetActive(ctx context.Context, id int64) error {
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE hubs SET is_active = 0`); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `UPDATE hubs SET is_active = 1 WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return requireRow(result, ErrHubNotFound)
	})
}

func (s *hubStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM hubs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrHubNotFound)
}

func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
