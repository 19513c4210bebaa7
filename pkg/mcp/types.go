package mcp

import (
	"time"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/room"
	"github.com/urmzd/dirigera/pkg/scene"
	"github.com/urmzd/dirigera/pkg/wire"
)

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or unhealthy)"`
	Hub       string `json:"hub" jsonschema:"description=Whether the hub answered (reachable or unreachable)"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- Device Tools ---

// DeviceInfo represents a device in tool outputs
type DeviceInfo struct {
	ID          string        `json:"id" jsonschema:"description=Hub device id"`
	Name        string        `json:"name" jsonschema:"description=User-assigned device name"`
	Kind        device.Kind   `json:"kind" jsonschema:"description=Device kind (light/blinds/outlet/...)"`
	IsReachable bool          `json:"is_reachable" jsonschema:"description=Whether the hub can currently talk to the device"`
	Room        string        `json:"room,omitempty" jsonschema:"description=Name of the room the device is in"`
	Writable    []string      `json:"writable" jsonschema:"description=Attributes the device accepts writes for"`
	Device      device.Device `json:"device" jsonschema:"description=Full device record with snake_case attributes"`
}

// ListDevicesOutput is the output for the list_devices tool
type ListDevicesOutput struct {
	Devices []DeviceInfo `json:"devices" jsonschema:"description=Devices on the hub"`
	Count   int          `json:"count" jsonschema:"description=Number of devices returned"`
	Skipped []string     `json:"skipped,omitempty" jsonschema:"description=Records the hub returned that could not be read"`
}

// GetDeviceOutput is the output for the get_device tool
type GetDeviceOutput struct {
	Device DeviceInfo `json:"device" jsonschema:"description=Device information"`
}

// RenameDeviceOutput is the output for the rename_device tool
type RenameDeviceOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the rename succeeded"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// SetDeviceStateOutput is the output for the set_device_state, turn_on and
// turn_off tools
type SetDeviceStateOutput struct {
	DeviceID string     `json:"device_id" jsonschema:"description=Device identifier"`
	Changed  []string   `json:"changed" jsonschema:"description=Attributes written"`
	Device   DeviceInfo `json:"device" jsonschema:"description=Device after the change"`
}

// --- Scene Tools ---

// SceneInfo represents a scene in tool outputs
type SceneInfo struct {
	ID            string     `json:"id" jsonschema:"description=Hub scene id"`
	Name          string     `json:"name" jsonschema:"description=Scene name"`
	Icon          scene.Icon `json:"icon" jsonschema:"description=Scene icon"`
	Type          scene.Type `json:"type" jsonschema:"description=Scene type"`
	Triggers      int        `json:"triggers" jsonschema:"description=Number of triggers"`
	Actions       int        `json:"actions" jsonschema:"description=Number of device actions"`
	LastTriggered *time.Time `json:"last_triggered,omitempty" jsonschema:"description=When the scene last ran"`
}

// ListScenesOutput is the output for the list_scenes tool
type ListScenesOutput struct {
	Scenes  []SceneInfo `json:"scenes" jsonschema:"description=Scenes on the hub"`
	Count   int         `json:"count" jsonschema:"description=Number of scenes returned"`
	Skipped []string    `json:"skipped,omitempty" jsonschema:"description=Records the hub returned that could not be read"`
}

// SceneActionOutput is the output for the trigger_scene and undo_scene tools
type SceneActionOutput struct {
	SceneID string `json:"scene_id" jsonschema:"description=Scene identifier"`
	Action  string `json:"action" jsonschema:"description=trigger or undo"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// --- Room Tools ---

// ListRoomsOutput is the output for the list_rooms tool
type ListRoomsOutput struct {
	Rooms   []*room.Room `json:"rooms" jsonschema:"description=Rooms on the hub"`
	Count   int          `json:"count" jsonschema:"description=Number of rooms returned"`
	Skipped []string     `json:"skipped,omitempty" jsonschema:"description=Records the hub returned that could not be read"`
}

// --- Helper conversions ---

// DeviceToInfo converts a device.Device to DeviceInfo
func DeviceToInfo(d device.Device) DeviceInfo {
	core := d.Base()
	info := DeviceInfo{
		ID:          core.ID,
		Name:        device.Name(d),
		Kind:        d.Kind(),
		IsReachable: core.IsReachable,
		Writable:    make([]string, 0, len(core.Capabilities.CanReceive)),
		Device:      d,
	}
	for _, attr := range core.Capabilities.CanReceive {
		info.Writable = append(info.Writable, wire.Snake(attr))
	}
	if core.Room != nil {
		info.Room = core.Room.Name
	}
	return info
}

// SceneToInfo converts a scene.Scene to SceneInfo
func SceneToInfo(s *scene.Scene) SceneInfo {
	return SceneInfo{
		ID:            s.ID,
		Name:          s.Info.Name,
		Icon:          s.Info.Icon,
		Type:          s.Type,
		Triggers:      len(s.Triggers),
		Actions:       len(s.Actions),
		LastTriggered: s.LastTriggered,
	}
}
