package device

import (
	"context"
	"fmt"
)

// LightAttributes are the attributes of a dimmable or colour light.
type LightAttributes struct {
	Attributes
	IsOn                bool              `json:"is_on"`
	LightLevel          *int              `json:"light_level,omitempty"`       // 1-100
	ColorTemperature    *int              `json:"color_temperature,omitempty"` // Kelvin
	ColorTemperatureMin *int              `json:"color_temperature_min,omitempty"`
	ColorTemperatureMax *int              `json:"color_temperature_max,omitempty"`
	ColorHue            *float64          `json:"color_hue,omitempty"`        // 0-360
	ColorSaturation     *float64          `json:"color_saturation,omitempty"` // 0-1
	ColorMode           *string           `json:"color_mode,omitempty"`
	StartupOnOff        *StartupBehaviour `json:"startup_on_off,omitempty"`
	StartupTemperature  *int              `json:"startup_temperature,omitempty"`
}

// Light is a lamp or bulb.
type Light struct {
	Core
	Attributes LightAttributes `json:"attributes"`
}

func (l *Light) Kind() Kind { return KindLight }

func (l *Light) Common() *Attributes { return &l.Attributes.Attributes }

// Reload refreshes the light from the hub.
func (l *Light) Reload(ctx context.Context) error {
	return reload(ctx, l, KindLight)
}

// SetName renames the light.
func (l *Light) SetName(ctx context.Context, name string) error {
	if err := l.setName(ctx, name); err != nil {
		return err
	}
	l.Attributes.CustomName = name
	return nil
}

// SetOn switches the light on or off.
func (l *Light) SetOn(ctx context.Context, on bool) error {
	if err := l.write(ctx, map[string]any{AttrIsOn: on}); err != nil {
		return err
	}
	l.Attributes.IsOn = on
	return nil
}

// SetLightLevel sets the brightness, 1 to 100 inclusive.
func (l *Light) SetLightLevel(ctx context.Context, level int) error {
	if err := l.Capabilities.AssertWritable(AttrLightLevel); err != nil {
		return err
	}
	if err := checkLevel(AttrLightLevel, level); err != nil {
		return err
	}
	if err := l.send(ctx, map[string]any{AttrLightLevel: level}); err != nil {
		return err
	}
	l.Attributes.LightLevel = &level
	return nil
}

// SetColorTemperature sets the white point in Kelvin. The hub reports the
// coolest limit as the minimum and the warmest as the maximum, so a valid
// value lies in [max, min]. Both limits must be known.
func (l *Light) SetColorTemperature(ctx context.Context, kelvin int) error {
	if err := l.Capabilities.AssertWritable(AttrColorTemperature); err != nil {
		return err
	}
	lo, hi := l.Attributes.ColorTemperatureMax, l.Attributes.ColorTemperatureMin
	if lo == nil || hi == nil {
		return fmt.Errorf("%w: color temperature limits not reported by light %s", ErrMissingPrecondition, l.ID)
	}
	if kelvin < *lo || kelvin > *hi {
		return fmt.Errorf("%w: color temperature must be between %d and %d, got %d", ErrValidation, *lo, *hi, kelvin)
	}
	if err := l.send(ctx, map[string]any{AttrColorTemperature: kelvin}); err != nil {
		return err
	}
	l.Attributes.ColorTemperature = &kelvin
	return nil
}

// SetColor sets hue (0-360) and saturation (0-1) in a single write.
func (l *Light) SetColor(ctx context.Context, hue, saturation float64) error {
	if err := l.Capabilities.AssertWritable(AttrColorHue, AttrColorSaturation); err != nil {
		return err
	}
	if hue < 0 || hue > 360 {
		return fmt.Errorf("%w: color hue must be between 0 and 360, got %v", ErrValidation, hue)
	}
	if saturation < 0 || saturation > 1 {
		return fmt.Errorf("%w: color saturation must be between 0 and 1, got %v", ErrValidation, saturation)
	}
	if err := l.send(ctx, map[string]any{AttrColorHue: hue, AttrColorSaturation: saturation}); err != nil {
		return err
	}
	l.Attributes.ColorHue = &hue
	l.Attributes.ColorSaturation = &saturation
	return nil
}

// SetStartupBehaviour sets what the light does when power returns.
func (l *Light) SetStartupBehaviour(ctx context.Context, b StartupBehaviour) error {
	if err := l.Capabilities.AssertWritable(AttrStartupOnOff); err != nil {
		return err
	}
	if !b.Known() {
		return fmt.Errorf("%w: unknown startup behaviour %q", ErrValidation, b)
	}
	if err := l.send(ctx, map[string]any{AttrStartupOnOff: b}); err != nil {
		return err
	}
	l.Attributes.StartupOnOff = &b
	return nil
}
