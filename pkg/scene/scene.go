// Package scene models hub scenes: stored sets of device attribute changes
// that can be triggered, undone and scheduled.
package scene

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/device/schema"
	"github.com/urmzd/dirigera/pkg/wire"
)

// Type is the scene's kind as reported by the hub.
type Type string

// Scene types
const (
	TypeUser     Type = "userScene"
	TypeCustom   Type = "customScene"
	TypePlaylist Type = "playlistScene"
)

// Known reports whether t is a documented scene type.
func (t Type) Known() bool {
	switch t {
	case TypeUser, TypeCustom, TypePlaylist:
		return true
	}
	return false
}

// Info is a scene's display information.
type Info struct {
	Name string `json:"name"`
	Icon Icon   `json:"icon"`
}

// Action is one device or device-set change the scene applies. Attributes
// use local snake_case names.
type Action struct {
	ID         string         `json:"id"` // device or device-set id
	Type       string         `json:"type"`
	Enabled    *bool          `json:"enabled,omitempty"`
	DeviceID   string         `json:"device_id,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Scene is a hub scene.
type Scene struct {
	ID                  string     `json:"id"`
	Type                Type       `json:"type"`
	Info                Info       `json:"info"`
	Triggers            []Trigger  `json:"triggers"`
	Actions             []Action   `json:"actions"`
	Commands            []string   `json:"commands"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
	LastCompleted       *time.Time `json:"last_completed,omitempty"`
	LastTriggered       *time.Time `json:"last_triggered,omitempty"`
	LastUndo            *time.Time `json:"last_undo,omitempty"`
	UndoAllowedDuration int        `json:"undo_allowed_duration"` // seconds

	transport device.Transport
}

const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "type", "info"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "type": {"type": "string"},
    "info": {
      "type": "object",
      "required": ["name"],
      "properties": {"name": {"type": "string"}, "icon": {"type": "string"}}
    },
    "triggers": {
      "type": "array",
      "items": {"type": "object", "required": ["type"], "properties": {"type": {"type": "string"}}}
    },
    "actions": {
      "type": "array",
      "items": {"type": "object", "required": ["id", "type"]}
    },
    "undoAllowedDuration": {"type": "integer"}
  }
}`

var validator = schema.NewValidator()

// Path returns the hub path of the scene with the given id.
func Path(id string) string {
	return "/scenes/" + url.PathEscape(id)
}

// Decode turns a raw hub scene record into a Scene bound to t.
func Decode(raw []byte, t device.Transport) (*Scene, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("scene: %w: %w", device.ErrMalformedRecord, err)
	}
	if err := validator.Validate(json.RawMessage(recordSchema), doc); err != nil {
		return nil, fmt.Errorf("scene: %w: %w", device.ErrMalformedRecord, err)
	}
	local, err := json.Marshal(wire.SnakeKeys(doc))
	if err != nil {
		return nil, err
	}
	var s Scene
	if err := json.Unmarshal(local, &s); err != nil {
		return nil, fmt.Errorf("scene: %w: %w", device.ErrMalformedRecord, err)
	}
	s.transport = t
	return &s, nil
}

// Get fetches one scene. A 404 becomes device.ErrNotFound.
func Get(ctx context.Context, t device.Transport, id string) (*Scene, error) {
	raw, err := t.Get(ctx, Path(id))
	if err != nil {
		return nil, device.NotFound(err, "scene", id)
	}
	return Decode(raw, t)
}

// List fetches every scene. Records that fail to decode are skipped and
// reported in the joined error alongside the scenes that did decode.
func List(ctx context.Context, t device.Transport) ([]*Scene, error) {
	raw, err := t.Get(ctx, "/scenes")
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("list scenes: %w: %w", device.ErrMalformedRecord, err)
	}
	scenes := make([]*Scene, 0, len(records))
	var errs []error
	for i, rec := range records {
		s, err := Decode(rec, t)
		if err != nil {
			errs = append(errs, fmt.Errorf("scene %d: %w", i, err))
			continue
		}
		scenes = append(scenes, s)
	}
	return scenes, errors.Join(errs...)
}

// Trigger runs the scene now. Local timestamps are not touched; Reload to
// see the hub's bookkeeping.
func (s *Scene) Trigger(ctx context.Context) error {
	return s.post(ctx, "trigger")
}

// Undo reverts the scene's last run, if the hub still allows it.
func (s *Scene) Undo(ctx context.Context) error {
	return s.post(ctx, "undo")
}

func (s *Scene) post(ctx context.Context, action string) error {
	if s.transport == nil {
		return fmt.Errorf("scene %s: %w", s.ID, device.ErrNoTransport)
	}
	if _, err := s.transport.Post(ctx, Path(s.ID)+"/"+action, nil); err != nil {
		return fmt.Errorf("%s scene %s: %w", action, s.ID, err)
	}
	return nil
}

// Reload replaces every field with the hub's current record.
func (s *Scene) Reload(ctx context.Context) error {
	if s.transport == nil {
		return fmt.Errorf("scene %s: %w", s.ID, device.ErrNoTransport)
	}
	fresh, err := Get(ctx, s.transport, s.ID)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// UndoWindow is how long after a run Undo is accepted.
func (s *Scene) UndoWindow() time.Duration {
	return time.Duration(s.UndoAllowedDuration) * time.Second
}

// Spec describes a scene to create.
type Spec struct {
	Info     Info      `json:"info"`
	Type     Type      `json:"type"`
	Triggers []Trigger `json:"triggers"`
	Actions  []Action  `json:"actions"`
}

type createResponse struct {
	ID string `json:"id"`
}

// Create stores a new scene on the hub and returns its id.
func Create(ctx context.Context, t device.Transport, spec Spec) (string, error) {
	if spec.Info.Name == "" {
		return "", fmt.Errorf("%w: scene name must not be empty", device.ErrValidation)
	}
	if !spec.Info.Icon.Known() {
		return "", fmt.Errorf("%w: unknown scene icon %q", device.ErrValidation, spec.Info.Icon)
	}
	if spec.Type == "" {
		spec.Type = TypeUser
	}
	if spec.Triggers == nil {
		spec.Triggers = []Trigger{}
	}
	if spec.Actions == nil {
		spec.Actions = []Action{}
	}
	body, err := toWire(spec)
	if err != nil {
		return "", err
	}
	raw, err := t.Post(ctx, "/scenes", body)
	if err != nil {
		return "", fmt.Errorf("create scene %q: %w", spec.Info.Name, err)
	}
	var resp createResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.ID == "" {
		return "", fmt.Errorf("create scene %q: %w: no id in response", spec.Info.Name, device.ErrMalformedRecord)
	}
	return resp.ID, nil
}

// Delete removes a scene from the hub.
func Delete(ctx context.Context, t device.Transport, id string) error {
	if _, err := t.Delete(ctx, Path(id), nil); err != nil {
		return device.NotFound(err, "scene", id)
	}
	return nil
}

// toWire encodes v in its local shape and camelises every key.
func toWire(v any) (any, error) {
	local, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(local, &doc); err != nil {
		return nil, err
	}
	return wire.CamelKeys(doc), nil
}
