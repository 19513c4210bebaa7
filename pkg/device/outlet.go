package device

import (
	"context"
	"fmt"
)

// OutletAttributes are the attributes of a smart plug. Energy readings are
// only reported by metering models.
type OutletAttributes struct {
	Attributes
	IsOn                           bool              `json:"is_on"`
	StartupOnOff                   *StartupBehaviour `json:"startup_on_off,omitempty"`
	StatusLight                    *bool             `json:"status_light,omitempty"`
	ChildLock                      *bool             `json:"child_lock,omitempty"`
	LightLevel                     *int              `json:"light_level,omitempty"`
	CurrentActivePower             *float64          `json:"current_active_power,omitempty"` // W
	CurrentAmps                    *float64          `json:"current_amps,omitempty"`
	CurrentVoltage                 *float64          `json:"current_voltage,omitempty"`
	TotalEnergyConsumed            *float64          `json:"total_energy_consumed,omitempty"` // kWh
	TotalEnergyConsumedLastUpdated *string           `json:"total_energy_consumed_last_updated,omitempty"`
	EnergyConsumedAtLastReset      *float64          `json:"energy_consumed_at_last_reset,omitempty"`
	TimeOfLastEnergyReset          *string           `json:"time_of_last_energy_reset,omitempty"`
}

// Outlet is a smart plug.
type Outlet struct {
	Core
	Attributes OutletAttributes `json:"attributes"`
}

func (o *Outlet) Kind() Kind { return KindOutlet }

func (o *Outlet) Common() *Attributes { return &o.Attributes.Attributes }

// Reload refreshes the outlet from the hub.
func (o *Outlet) Reload(ctx context.Context) error {
	return reload(ctx, o, KindOutlet)
}

// SetName renames the outlet.
func (o *Outlet) SetName(ctx context.Context, name string) error {
	if err := o.setName(ctx, name); err != nil {
		return err
	}
	o.Attributes.CustomName = name
	return nil
}

// SetOn switches the outlet on or off.
func (o *Outlet) SetOn(ctx context.Context, on bool) error {
	if err := o.write(ctx, map[string]any{AttrIsOn: on}); err != nil {
		return err
	}
	o.Attributes.IsOn = on
	return nil
}

// SetStartupBehaviour sets what the outlet does when power returns.
func (o *Outlet) SetStartupBehaviour(ctx context.Context, b StartupBehaviour) error {
	if err := o.Capabilities.AssertWritable(AttrStartupOnOff); err != nil {
		return err
	}
	if !b.Known() {
		return fmt.Errorf("%w: unknown startup behaviour %q", ErrValidation, b)
	}
	if err := o.send(ctx, map[string]any{AttrStartupOnOff: b}); err != nil {
		return err
	}
	o.Attributes.StartupOnOff = &b
	return nil
}

// SetStatusLight turns the outlet's indicator LED on or off.
func (o *Outlet) SetStatusLight(ctx context.Context, on bool) error {
	if err := o.write(ctx, map[string]any{AttrStatusLight: on}); err != nil {
		return err
	}
	o.Attributes.StatusLight = &on
	return nil
}

// SetChildLock locks or unlocks the outlet's physical button.
func (o *Outlet) SetChildLock(ctx context.Context, locked bool) error {
	if err := o.write(ctx, map[string]any{AttrChildLock: locked}); err != nil {
		return err
	}
	o.Attributes.ChildLock = &locked
	return nil
}
