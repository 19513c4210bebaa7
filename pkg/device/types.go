// Package device decodes hub device records into typed variants and performs
// validated, capability-gated writes against them.
package device

import (
	"context"
	"time"
)

// Kind identifies the variant a device record decodes into.
type Kind string

// Device kinds
const (
	KindLight             Kind = "light"
	KindBlind             Kind = "blinds"
	KindOutlet            Kind = "outlet"
	KindController        Kind = "controller"
	KindEnvironmentSensor Kind = "environmentSensor"
	KindMotionSensor      Kind = "motionSensor"
	KindOpenCloseSensor   Kind = "openCloseSensor"
	KindWaterSensor       Kind = "waterSensor"
	KindAirPurifier       Kind = "airPurifier"
	KindUnknown           Kind = "unknown"
)

// KindOf picks the variant for a record. The specific deviceType wins over
// the general type so sensors, which all share type "sensor", are told apart.
func KindOf(typ, deviceType string) Kind {
	switch deviceType {
	case "environmentSensor":
		return KindEnvironmentSensor
	case "motionSensor":
		return KindMotionSensor
	case "openCloseSensor":
		return KindOpenCloseSensor
	case "waterSensor":
		return KindWaterSensor
	case "airPurifier":
		return KindAirPurifier
	case "blinds":
		return KindBlind
	}
	switch typ {
	case "light":
		return KindLight
	case "blinds", "blind":
		return KindBlind
	case "outlet":
		return KindOutlet
	case "controller":
		return KindController
	case "airPurifier":
		return KindAirPurifier
	}
	return KindUnknown
}

// Device is implemented by every variant.
type Device interface {
	// Base returns the identity and metadata shared by all variants
	Base() *Core

	// Common returns the attributes shared by all variants
	Common() *Attributes

	// Kind returns the variant discriminator
	Kind() Kind

	// SetName renames the device on the hub
	SetName(ctx context.Context, name string) error

	// Reload replaces the local snapshot with the hub's current record
	Reload(ctx context.Context) error
}

// Core holds the fields every device record carries outside its attributes.
type Core struct {
	ID           string       `json:"id"`
	RelationID   *string      `json:"relation_id,omitempty"` // Shared by sub-devices of one physical unit
	Type         string       `json:"type"`                  // General type (light, sensor, controller, ...)
	DeviceType   string       `json:"device_type"`           // Specific type (motionSensor, lightController, ...)
	CreatedAt    *time.Time   `json:"created_at,omitempty"`
	IsReachable  bool         `json:"is_reachable"`
	LastSeen     *time.Time   `json:"last_seen,omitempty"`
	CustomIcon   *string      `json:"custom_icon,omitempty"`
	Capabilities Capabilities `json:"capabilities"`
	Room         *RoomRef     `json:"room,omitempty"`
	DeviceSet    []DeviceSet  `json:"device_set,omitempty"`
	RemoteLinks  []string     `json:"remote_links,omitempty"` // Ids of controllers bound to this device
	IsHidden     *bool        `json:"is_hidden,omitempty"`

	transport Transport
}

// Base returns c itself so variants satisfy Device through embedding.
func (c *Core) Base() *Core {
	return c
}

func (c *Core) bind(t Transport) {
	c.transport = t
}

// Attributes holds the attribute fields every variant carries. Only the name
// is required; everything else is reported by some firmware and not others.
type Attributes struct {
	CustomName       string  `json:"custom_name"`
	Model            *string `json:"model,omitempty"`
	Manufacturer     *string `json:"manufacturer,omitempty"`
	FirmwareVersion  *string `json:"firmware_version,omitempty"`
	HardwareVersion  *string `json:"hardware_version,omitempty"`
	SerialNumber     *string `json:"serial_number,omitempty"`
	ProductCode      *string `json:"product_code,omitempty"`
	OTAStatus        *string `json:"ota_status,omitempty"`
	OTAState         *string `json:"ota_state,omitempty"`
	OTAProgress      *int    `json:"ota_progress,omitempty"`
	OTAPolicy        *string `json:"ota_policy,omitempty"`
	OTAScheduleStart *string `json:"ota_schedule_start,omitempty"`
	OTAScheduleEnd   *string `json:"ota_schedule_end,omitempty"`
}

// RoomRef is the room summary embedded in a device record.
type RoomRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// DeviceSet is a named group the device belongs to.
type DeviceSet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// StartupBehaviour is what a light or outlet does when power returns.
// Unrecognised values decode without error and report Known() == false.
type StartupBehaviour string

// Startup behaviours
const (
	StartOn       StartupBehaviour = "startOn"
	StartOff      StartupBehaviour = "startOff"
	StartPrevious StartupBehaviour = "startPrevious"
	StartToggle   StartupBehaviour = "startToggle"
)

// Known reports whether s is one of the documented behaviours.
func (s StartupBehaviour) Known() bool {
	switch s {
	case StartOn, StartOff, StartPrevious, StartToggle:
		return true
	}
	return false
}

// FanMode is an air purifier's fan setting.
type FanMode string

// Fan modes
const (
	FanOff    FanMode = "off"
	FanOn     FanMode = "on"
	FanLow    FanMode = "low"
	FanMedium FanMode = "medium"
	FanHigh   FanMode = "high"
	FanAuto   FanMode = "auto"
)

// Known reports whether m is one of the documented modes.
func (m FanMode) Known() bool {
	switch m {
	case FanOff, FanOn, FanLow, FanMedium, FanHigh, FanAuto:
		return true
	}
	return false
}

// Name returns the device's user-assigned name.
func Name(d Device) string {
	return d.Common().CustomName
}
