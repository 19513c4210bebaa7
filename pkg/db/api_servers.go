package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

var ErrAPIServerNotFound = errors.New("api server config not found")

// APIServer is the listen address of the REST bridge for one hub.
type APIServer struct {
	ID        int64
	HubID     int64
	Host      string
	Port      int
	CreatedAt time.Time
}

// Address returns host:port.
func (a *APIServer) Address() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// APIServerStore reads and writes API server configs. Rows go away with
// their hub (ON DELETE CASCADE).
type APIServerStore interface {
	Get(ctx context.Context, hubID int64) (*APIServer, error)
	Create(ctx context.Context, a *APIServer) error
	Update(ctx context.Context, a *APIServer) error
}

// APIServers returns an APIServerStore for this database.
func (db *DB) APIServers() APIServerStore {
	return &apiServerStore{q: db}
}

type apiServerStore struct {
	q querier
}

func (s *apiServerStore) Get(ctx context.Context, hubID int64) (*APIServer, error) {
	a := &APIServer{}
	var createdAt string
	err := s.q.QueryRowContext(ctx, `
		SELECT id, hub_id, host, port, created_at
		FROM api_servers WHERE hub_id = ?
	`, hubID).Scan(&a.ID, &a.HubID, &a.Host, &a.Port, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAPIServerNotFound
	}
	if err != nil {
		return nil, err
	}
	a.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	return a, nil
}

func (s *apiServerStore) Create(ctx context.Context, a *APIServer) error {
	result, err := s.q.ExecContext(ctx, `
		INSERT INTO api_servers (hub_id, host, port)
		VALUES (?, ?, ?)
	`, a.HubID, a.Host, a.Port)
	if err != nil {
		return fmt.Errorf("failed to create API server config: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (s *apiServerStore) Update(ctx context.Context, a *APIServer) error {
	result, err := s.q.ExecContext(ctx, `
		UPDATE api_servers SET host = ?, port = ?
		WHERE hub_id = ?
	`, a.Host, a.Port, a.HubID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrAPIServerNotFound)
}

// SetAPIAddress stores address (host:port) as the REST bridge listen
// address of hubID.
func (db *DB) SetAPIAddress(ctx context.Context, hubID int64, address string) error {
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", address, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid listen port %q", portStr)
	}

	servers := db.APIServers()
	a := &APIServer{HubID: hubID, Host: host, Port: port}
	err = servers.Update(ctx, a)
	if errors.Is(err, ErrAPIServerNotFound) {
		return servers.Create(ctx, a)
	}
	return err
}
