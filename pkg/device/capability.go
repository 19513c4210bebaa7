package device

import (
	"fmt"
	"slices"

	"github.com/urmzd/dirigera/pkg/wire"
)

// Local attribute names accepted by setters and commands. The hub spells
// each one in camelCase; see wire.Camel.
const (
	AttrCustomName        = "custom_name"
	AttrIsOn              = "is_on"
	AttrLightLevel        = "light_level"
	AttrColorTemperature  = "color_temperature"
	AttrColorHue          = "color_hue"
	AttrColorSaturation   = "color_saturation"
	AttrStartupOnOff      = "startup_on_off"
	AttrBlindsTargetLevel = "blinds_target_level"
	AttrFanMode           = "fan_mode"
	AttrMotorState        = "motor_state"
	AttrChildLock         = "child_lock"
	AttrStatusLight       = "status_light"
)

// Capabilities lists the wire attribute names a device emits and accepts.
type Capabilities struct {
	CanSend    []string `json:"can_send"`
	CanReceive []string `json:"can_receive"`
}

// CanWrite reports whether the device accepts writes for the local
// attribute name.
func (c Capabilities) CanWrite(name string) bool {
	return slices.Contains(c.CanReceive, wire.Camel(name))
}

// AssertWritable fails with ErrCapabilityUnsupported naming the first
// attribute the device does not accept.
func (c Capabilities) AssertWritable(names ...string) error {
	for _, name := range names {
		if !c.CanWrite(name) {
			return fmt.Errorf("%w: %s", ErrCapabilityUnsupported, wire.Camel(name))
		}
	}
	return nil
}
