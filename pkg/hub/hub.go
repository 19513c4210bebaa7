package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/room"
	"github.com/urmzd/dirigera/pkg/scene"
)

// Hub is the entry point for looking up entities. Every entity it returns
// shares its transport.
type Hub struct {
	transport device.Transport
}

// New creates a Hub over t, usually a *Client.
func New(t device.Transport) *Hub {
	return &Hub{transport: t}
}

// Transport returns the transport entities are bound to.
func (h *Hub) Transport() device.Transport {
	return h.transport
}

// Status returns the hub's own status record.
func (h *Hub) Status(ctx context.Context) (map[string]any, error) {
	raw, err := h.transport.Get(ctx, "/hub/status")
	if err != nil {
		return nil, fmt.Errorf("hub status: %w", err)
	}
	var status map[string]any
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, fmt.Errorf("hub status: %w: %w", device.ErrMalformedRecord, err)
	}
	return status, nil
}

// Devices fetches and decodes every device. Records that fail to decode are
// left out of the result and reported together in the returned error, so
// callers may use the devices even when err != nil.
func (h *Hub) Devices(ctx context.Context) ([]device.Device, error) {
	raw, err := h.transport.Get(ctx, "/devices")
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("list devices: %w: %w", device.ErrMalformedRecord, err)
	}

	devices := make([]device.Device, 0, len(records))
	var errs []error
	for i, rec := range records {
		d, err := device.Decode(rec, h.transport)
		if err != nil {
			errs = append(errs, fmt.Errorf("device %d: %w", i, err))
			continue
		}
		devices = append(devices, d)
	}
	return devices, errors.Join(errs...)
}

// Device fetches one device of any kind.
func (h *Hub) Device(ctx context.Context, id string) (device.Device, error) {
	return device.Fetch(ctx, h.transport, id)
}

// DeviceByName returns the first device whose name matches exactly.
func (h *Hub) DeviceByName(ctx context.Context, name string) (device.Device, error) {
	all, err := h.Devices(ctx)
	return byName(all, err, name)
}

// Lights returns every light.
func (h *Hub) Lights(ctx context.Context) ([]*device.Light, error) {
	return listOf[*device.Light](ctx, h)
}

// Light fetches one light.
func (h *Hub) Light(ctx context.Context, id string) (*device.Light, error) {
	return fetchAs(ctx, h, id, device.DecodeLight)
}

// LightByName returns the light with the given name.
func (h *Hub) LightByName(ctx context.Context, name string) (*device.Light, error) {
	all, err := h.Lights(ctx)
	return byName(all, err, name)
}

// Blinds returns every blind.
func (h *Hub) Blinds(ctx context.Context) ([]*device.Blind, error) {
	return listOf[*device.Blind](ctx, h)
}

// Blind fetches one blind.
func (h *Hub) Blind(ctx context.Context, id string) (*device.Blind, error) {
	return fetchAs(ctx, h, id, device.DecodeBlind)
}

// BlindByName returns the blind with the given name.
func (h *Hub) BlindByName(ctx context.Context, name string) (*device.Blind, error) {
	all, err := h.Blinds(ctx)
	return byName(all, err, name)
}

// Outlets returns every outlet.
func (h *Hub) Outlets(ctx context.Context) ([]*device.Outlet, error) {
	return listOf[*device.Outlet](ctx, h)
}

// Outlet fetches one outlet.
func (h *Hub) Outlet(ctx context.Context, id string) (*device.Outlet, error) {
	return fetchAs(ctx, h, id, device.DecodeOutlet)
}

// OutletByName returns the outlet with the given name.
func (h *Hub) OutletByName(ctx context.Context, name string) (*device.Outlet, error) {
	all, err := h.Outlets(ctx)
	return byName(all, err, name)
}

// Controllers returns every controller.
func (h *Hub) Controllers(ctx context.Context) ([]*device.Controller, error) {
	return listOf[*device.Controller](ctx, h)
}

// Controller fetches one controller.
func (h *Hub) Controller(ctx context.Context, id string) (*device.Controller, error) {
	return fetchAs(ctx, h, id, device.DecodeController)
}

// EnvironmentSensors returns every environment sensor.
func (h *Hub) EnvironmentSensors(ctx context.Context) ([]*device.EnvironmentSensor, error) {
	return listOf[*device.EnvironmentSensor](ctx, h)
}

// EnvironmentSensor fetches one environment sensor.
func (h *Hub) EnvironmentSensor(ctx context.Context, id string) (*device.EnvironmentSensor, error) {
	return fetchAs(ctx, h, id, device.DecodeEnvironmentSensor)
}

// MotionSensors returns every motion sensor.
func (h *Hub) MotionSensors(ctx context.Context) ([]*device.MotionSensor, error) {
	return listOf[*device.MotionSensor](ctx, h)
}

// MotionSensor fetches one motion sensor.
func (h *Hub) MotionSensor(ctx context.Context, id string) (*device.MotionSensor, error) {
	return fetchAs(ctx, h, id, device.DecodeMotionSensor)
}

// OpenCloseSensors returns every open/close sensor.
func (h *Hub) OpenCloseSensors(ctx context.Context) ([]*device.OpenCloseSensor, error) {
	return listOf[*device.OpenCloseSensor](ctx, h)
}

// OpenCloseSensor fetches one open/close sensor.
func (h *Hub) OpenCloseSensor(ctx context.Context, id string) (*device.OpenCloseSensor, error) {
	return fetchAs(ctx, h, id, device.DecodeOpenCloseSensor)
}

// WaterSensors returns every water sensor.
func (h *Hub) WaterSensors(ctx context.Context) ([]*device.WaterSensor, error) {
	return listOf[*device.WaterSensor](ctx, h)
}

// WaterSensor fetches one water sensor.
func (h *Hub) WaterSensor(ctx context.Context, id string) (*device.WaterSensor, error) {
	return fetchAs(ctx, h, id, device.DecodeWaterSensor)
}

// AirPurifiers returns every air purifier.
func (h *Hub) AirPurifiers(ctx context.Context) ([]*device.AirPurifier, error) {
	return listOf[*device.AirPurifier](ctx, h)
}

// AirPurifier fetches one air purifier.
func (h *Hub) AirPurifier(ctx context.Context, id string) (*device.AirPurifier, error) {
	return fetchAs(ctx, h, id, device.DecodeAirPurifier)
}

// Scenes returns every scene.
func (h *Hub) Scenes(ctx context.Context) ([]*scene.Scene, error) {
	return scene.List(ctx, h.transport)
}

// Scene fetches one scene.
func (h *Hub) Scene(ctx context.Context, id string) (*scene.Scene, error) {
	return scene.Get(ctx, h.transport, id)
}

// SceneByName returns the scene with the given name.
func (h *Hub) SceneByName(ctx context.Context, name string) (*scene.Scene, error) {
	all, err := h.Scenes(ctx)
	if len(all) == 0 && err != nil {
		return nil, err
	}
	for _, s := range all {
		if s.Info.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("scene named %q: %w", name, device.ErrNotFound)
}

// CreateScene stores a new scene and returns it as the hub reports it.
func (h *Hub) CreateScene(ctx context.Context, spec scene.Spec) (*scene.Scene, error) {
	id, err := scene.Create(ctx, h.transport, spec)
	if err != nil {
		return nil, err
	}
	return scene.Get(ctx, h.transport, id)
}

// DeleteScene removes a scene.
func (h *Hub) DeleteScene(ctx context.Context, id string) error {
	return scene.Delete(ctx, h.transport, id)
}

// Rooms returns every room.
func (h *Hub) Rooms(ctx context.Context) ([]*room.Room, error) {
	return room.List(ctx, h.transport)
}

// Room fetches one room.
func (h *Hub) Room(ctx context.Context, id string) (*room.Room, error) {
	return room.Get(ctx, h.transport, id)
}

// listOf scans every device and keeps those of type P. Decode failures of
// other records are passed through.
func listOf[P device.Device](ctx context.Context, h *Hub) ([]P, error) {
	all, err := h.Devices(ctx)
	if all == nil {
		return nil, err
	}
	out := make([]P, 0, len(all))
	for _, d := range all {
		if v, ok := d.(P); ok {
			out = append(out, v)
		}
	}
	return out, err
}

func fetchAs[P device.Device](ctx context.Context, h *Hub, id string, decode func([]byte, device.Transport) (P, error)) (P, error) {
	var zero P
	raw, err := device.GetRecord(ctx, h.transport, id)
	if err != nil {
		return zero, err
	}
	v, err := decode(raw, h.transport)
	if err != nil {
		return zero, err
	}
	return v, nil
}

// byName returns the first entity named name. A scan error is only reported
// when nothing matched.
func byName[P device.Device](all []P, scanErr error, name string) (P, error) {
	for _, d := range all {
		if device.Name(d) == name {
			return d, nil
		}
	}
	var zero P
	if all == nil && scanErr != nil {
		return zero, scanErr
	}
	if scanErr != nil {
		return zero, fmt.Errorf("device named %q: %w (%w)", name, device.ErrNotFound, scanErr)
	}
	return zero, fmt.Errorf("device named %q: %w", name, device.ErrNotFound)
}
