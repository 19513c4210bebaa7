package types

import (
	"time"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/room"
	"github.com/urmzd/dirigera/pkg/scene"
)

// --- Request DTOs ---

// RenameRequest is the request body for PATCH /rooms/:id
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Hub       string    `json:"hub"`
	Timestamp time.Time `json:"timestamp"`
}

// DeviceView is a device with its kind spelled out. Device holds the
// variant's fields in snake_case.
type DeviceView struct {
	Kind   device.Kind   `json:"kind"`
	Device device.Device `json:"device"`
}

// NewDeviceView wraps d.
func NewDeviceView(d device.Device) DeviceView {
	return DeviceView{Kind: d.Kind(), Device: d}
}

// ListDevicesResponse is returned from GET /devices. Errors lists records
// the hub returned that could not be decoded.
type ListDevicesResponse struct {
	Devices []DeviceView `json:"devices"`
	Count   int          `json:"count"`
	Errors  []string     `json:"errors,omitempty"`
}

// DeviceResponse is returned from GET and PATCH /devices/:id
type DeviceResponse struct {
	Device DeviceView `json:"device"`
}

// ListScenesResponse is returned from GET /scenes
type ListScenesResponse struct {
	Scenes []*scene.Scene `json:"scenes"`
	Count  int            `json:"count"`
	Errors []string       `json:"errors,omitempty"`
}

// SceneResponse is returned from GET /scenes/:id
type SceneResponse struct {
	Scene *scene.Scene `json:"scene"`
}

// SceneActionResponse is returned from POST /scenes/:id/trigger and /undo
type SceneActionResponse struct {
	Scene  string    `json:"scene"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// ListRoomsResponse is returned from GET /rooms
type ListRoomsResponse struct {
	Rooms  []*room.Room `json:"rooms"`
	Count  int          `json:"count"`
	Errors []string     `json:"errors,omitempty"`
}

// RoomResponse is returned from GET and PATCH /rooms/:id
type RoomResponse struct {
	Room *room.Room `json:"room"`
}
