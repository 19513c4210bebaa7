// Package room models hub rooms.
package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/urmzd/dirigera/pkg/device"
)

// Room groups devices for display and bulk control.
type Room struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
	Icon  string `json:"icon"`

	transport device.Transport
}

// Path returns the hub path of the room with the given id.
func Path(id string) string {
	return "/rooms/" + url.PathEscape(id)
}

// Decode turns a raw hub room record into a Room bound to t. Room records
// carry no nested keys that differ between cases, so they decode directly.
func Decode(raw []byte, t device.Transport) (*Room, error) {
	var r Room
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("room: %w: %w", device.ErrMalformedRecord, err)
	}
	if r.ID == "" {
		return nil, fmt.Errorf("room: %w: missing id", device.ErrMalformedRecord)
	}
	r.transport = t
	return &r, nil
}

// Get fetches one room. A 404 becomes device.ErrNotFound.
func Get(ctx context.Context, t device.Transport, id string) (*Room, error) {
	raw, err := t.Get(ctx, Path(id))
	if err != nil {
		return nil, device.NotFound(err, "room", id)
	}
	return Decode(raw, t)
}

// List fetches every room, skipping records that fail to decode and
// reporting them in the joined error.
func List(ctx context.Context, t device.Transport) ([]*Room, error) {
	raw, err := t.Get(ctx, "/rooms")
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("list rooms: %w: %w", device.ErrMalformedRecord, err)
	}
	rooms := make([]*Room, 0, len(records))
	var errs []error
	for i, rec := range records {
		r, err := Decode(rec, t)
		if err != nil {
			errs = append(errs, fmt.Errorf("room %d: %w", i, err))
			continue
		}
		rooms = append(rooms, r)
	}
	return rooms, errors.Join(errs...)
}

// Reload replaces every field with the hub's current record.
func (r *Room) Reload(ctx context.Context) error {
	if r.transport == nil {
		return fmt.Errorf("room %s: %w", r.ID, device.ErrNoTransport)
	}
	fresh, err := Get(ctx, r.transport, r.ID)
	if err != nil {
		return err
	}
	*r = *fresh
	return nil
}

// SetName renames the room.
func (r *Room) SetName(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: room name must not be empty", device.ErrValidation)
	}
	if err := r.patch(ctx, map[string]any{"name": name}); err != nil {
		return err
	}
	r.Name = name
	return nil
}

// SetColor changes the room's colour.
func (r *Room) SetColor(ctx context.Context, c Color) error {
	if !c.Known() {
		return fmt.Errorf("%w: unknown room color %q", device.ErrValidation, c)
	}
	if err := r.patch(ctx, map[string]any{"color": c}); err != nil {
		return err
	}
	r.Color = c
	return nil
}

// patch sends a plain object body; rooms are not attribute-wrapped like
// devices.
func (r *Room) patch(ctx context.Context, body map[string]any) error {
	if r.transport == nil {
		return fmt.Errorf("room %s: %w", r.ID, device.ErrNoTransport)
	}
	if _, err := r.transport.Patch(ctx, Path(r.ID), body); err != nil {
		return fmt.Errorf("update room %s: %w", r.ID, err)
	}
	return nil
}

// Create adds a room and returns its hub-assigned id.
func Create(ctx context.Context, t device.Transport, name, icon string, color Color) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: room name must not be empty", device.ErrValidation)
	}
	if !color.Known() {
		return "", fmt.Errorf("%w: unknown room color %q", device.ErrValidation, color)
	}
	raw, err := t.Post(ctx, "/rooms", map[string]any{"name": name, "icon": icon, "color": color})
	if err != nil {
		return "", fmt.Errorf("create room %q: %w", name, err)
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.ID == "" {
		return "", fmt.Errorf("create room %q: %w: no id in response", name, device.ErrMalformedRecord)
	}
	return resp.ID, nil
}

// Delete removes a room. Its devices become unassigned.
func Delete(ctx context.Context, t device.Transport, id string) error {
	if _, err := t.Delete(ctx, Path(id), nil); err != nil {
		return device.NotFound(err, "room", id)
	}
	return nil
}
