package device

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// CommandSchema is the JSON Schema for a Command body. It checks shape and
// types only; ranges are enforced by the setters.
var CommandSchema = json.RawMessage(`{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "minProperties": 1,
  "properties": {
    "custom_name": {"type": "string", "minLength": 1},
    "is_on": {"type": "boolean"},
    "light_level": {"type": "integer"},
    "color_temperature": {"type": "integer"},
    "color_hue": {"type": "number"},
    "color_saturation": {"type": "number"},
    "startup_on_off": {"type": "string", "enum": ["startOn", "startOff", "startPrevious", "startToggle"]},
    "blinds_target_level": {"type": "integer"},
    "fan_mode": {"type": "string", "enum": ["off", "on", "low", "medium", "high", "auto"]},
    "motor_state": {"type": "integer"},
    "child_lock": {"type": "boolean"},
    "status_light": {"type": "boolean"}
  },
  "dependentRequired": {
    "color_hue": ["color_saturation"],
    "color_saturation": ["color_hue"]
  }
}`)

// Command is a partial desired state. Only non-nil fields are written.
type Command struct {
	CustomName        *string           `json:"custom_name,omitempty"`
	IsOn              *bool             `json:"is_on,omitempty"`
	LightLevel        *int              `json:"light_level,omitempty"`
	ColorTemperature  *int              `json:"color_temperature,omitempty"`
	ColorHue          *float64          `json:"color_hue,omitempty"`
	ColorSaturation   *float64          `json:"color_saturation,omitempty"`
	StartupOnOff      *StartupBehaviour `json:"startup_on_off,omitempty"`
	BlindsTargetLevel *int              `json:"blinds_target_level,omitempty"`
	FanMode           *FanMode          `json:"fan_mode,omitempty"`
	MotorState        *int              `json:"motor_state,omitempty"`
	ChildLock         *bool             `json:"child_lock,omitempty"`
	StatusLight       *bool             `json:"status_light,omitempty"`
}

// Fields returns the local attribute names set in c.
func (c Command) Fields() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(c.CustomName != nil, AttrCustomName)
	add(c.IsOn != nil, AttrIsOn)
	add(c.LightLevel != nil, AttrLightLevel)
	add(c.ColorTemperature != nil, AttrColorTemperature)
	add(c.ColorHue != nil, AttrColorHue)
	add(c.ColorSaturation != nil, AttrColorSaturation)
	add(c.StartupOnOff != nil, AttrStartupOnOff)
	add(c.BlindsTargetLevel != nil, AttrBlindsTargetLevel)
	add(c.FanMode != nil, AttrFanMode)
	add(c.MotorState != nil, AttrMotorState)
	add(c.ChildLock != nil, AttrChildLock)
	add(c.StatusLight != nil, AttrStatusLight)
	return out
}

// Empty reports whether c sets nothing.
func (c Command) Empty() bool {
	return len(c.Fields()) == 0
}

// accepts lists the command fields each kind has a setter for.
var accepts = map[Kind][]string{
	KindLight: {
		AttrCustomName, AttrIsOn, AttrLightLevel, AttrColorTemperature,
		AttrColorHue, AttrColorSaturation, AttrStartupOnOff,
	},
	KindOutlet: {
		AttrCustomName, AttrIsOn, AttrStartupOnOff, AttrStatusLight, AttrChildLock,
	},
	KindBlind: {
		AttrCustomName, AttrBlindsTargetLevel,
	},
	KindAirPurifier: {
		AttrCustomName, AttrFanMode, AttrMotorState, AttrChildLock, AttrStatusLight,
	},
}

// Apply runs the setter for every field in cmd against d, one write per
// setter. Fields the variant has no setter for are rejected before anything
// is sent. A failing setter stops the sequence; earlier writes stay applied.
func Apply(ctx context.Context, d Device, cmd Command) error {
	fields := cmd.Fields()
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty command", ErrValidation)
	}
	allowed := accepts[d.Kind()]
	for _, f := range fields {
		if f != AttrCustomName && !slices.Contains(allowed, f) {
			return fmt.Errorf("%w: %s does not accept %s", ErrCapabilityUnsupported, d.Kind(), f)
		}
	}
	if (cmd.ColorHue == nil) != (cmd.ColorSaturation == nil) {
		return fmt.Errorf("%w: color_hue and color_saturation must be set together", ErrValidation)
	}

	if cmd.CustomName != nil {
		if err := d.SetName(ctx, *cmd.CustomName); err != nil {
			return err
		}
	}

	switch v := d.(type) {
	case *Light:
		return applyLight(ctx, v, cmd)
	case *Outlet:
		return applyOutlet(ctx, v, cmd)
	case *Blind:
		if cmd.BlindsTargetLevel != nil {
			return v.SetTargetLevel(ctx, *cmd.BlindsTargetLevel)
		}
	case *AirPurifier:
		return applyAirPurifier(ctx, v, cmd)
	}
	return nil
}

func applyLight(ctx context.Context, l *Light, cmd Command) error {
	if cmd.IsOn != nil {
		if err := l.SetOn(ctx, *cmd.IsOn); err != nil {
			return err
		}
	}
	if cmd.LightLevel != nil {
		if err := l.SetLightLevel(ctx, *cmd.LightLevel); err != nil {
			return err
		}
	}
	if cmd.ColorTemperature != nil {
		if err := l.SetColorTemperature(ctx, *cmd.ColorTemperature); err != nil {
			return err
		}
	}
	if cmd.ColorHue != nil {
		if err := l.SetColor(ctx, *cmd.ColorHue, *cmd.ColorSaturation); err != nil {
			return err
		}
	}
	if cmd.StartupOnOff != nil {
		return l.SetStartupBehaviour(ctx, *cmd.StartupOnOff)
	}
	return nil
}

func applyOutlet(ctx context.Context, o *Outlet, cmd Command) error {
	if cmd.IsOn != nil {
		if err := o.SetOn(ctx, *cmd.IsOn); err != nil {
			return err
		}
	}
	if cmd.StartupOnOff != nil {
		if err := o.SetStartupBehaviour(ctx, *cmd.StartupOnOff); err != nil {
			return err
		}
	}
	if cmd.StatusLight != nil {
		if err := o.SetStatusLight(ctx, *cmd.StatusLight); err != nil {
			return err
		}
	}
	if cmd.ChildLock != nil {
		return o.SetChildLock(ctx, *cmd.ChildLock)
	}
	return nil
}

func applyAirPurifier(ctx context.Context, a *AirPurifier, cmd Command) error {
	if cmd.FanMode != nil {
		if err := a.SetFanMode(ctx, *cmd.FanMode); err != nil {
			return err
		}
	}
	if cmd.MotorState != nil {
		if err := a.SetMotorState(ctx, *cmd.MotorState); err != nil {
			return err
		}
	}
	if cmd.ChildLock != nil {
		if err := a.SetChildLock(ctx, *cmd.ChildLock); err != nil {
			return err
		}
	}
	if cmd.StatusLight != nil {
		return a.SetStatusLight(ctx, *cmd.StatusLight)
	}
	return nil
}

// DecodeCommand validates body against CommandSchema and decodes it.
func DecodeCommand(body []byte) (Command, error) {
	var cmd Command
	if err := validator.ValidateJSON(CommandSchema, body); err != nil {
		return cmd, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := json.Unmarshal(body, &cmd); err != nil {
		return cmd, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return cmd, nil
}
