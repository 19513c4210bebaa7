package scene

import (
	"encoding/json"
	"fmt"
	"time"
)

// TriggerType discriminates the trigger union.
type TriggerType string

// Trigger types
const (
	TriggerApp           TriggerType = "app"
	TriggerController    TriggerType = "controller"
	TriggerSunriseSunset TriggerType = "sunriseSunset"
	TriggerTime          TriggerType = "time"
)

// Detail is the type-specific part of a trigger. It is one of
// *ControllerTrigger, *SunriseSunsetTrigger, *TimeTrigger or *UnknownTrigger;
// app triggers carry no detail.
type Detail interface {
	triggerType() TriggerType
}

// ControllerTrigger fires when a remote button is pressed.
type ControllerTrigger struct {
	ControllerType string `json:"controller_type,omitempty"`
	ClickPattern   string `json:"click_pattern"` // singlePress, doublePress, longPress
	ButtonIndex    int    `json:"button_index"`
	DeviceID       string `json:"device_id"`
}

func (*ControllerTrigger) triggerType() TriggerType { return TriggerController }

// SunriseSunsetTrigger fires at sunrise or sunset, shifted by Offset minutes.
type SunriseSunsetTrigger struct {
	Type   string   `json:"type"` // sunrise or sunset
	Offset int      `json:"offset"`
	Days   []string `json:"days,omitempty"`
}

func (*SunriseSunsetTrigger) triggerType() TriggerType { return TriggerSunriseSunset }

// TimeTrigger fires at a clock time on the listed days.
type TimeTrigger struct {
	Time string   `json:"time"` // HH:MM
	Days []string `json:"days,omitempty"`
}

func (*TimeTrigger) triggerType() TriggerType { return TriggerTime }

// UnknownTrigger keeps the detail of a trigger type this package does not
// model.
type UnknownTrigger struct {
	Type TriggerType
	Raw  json.RawMessage
}

func (u *UnknownTrigger) triggerType() TriggerType { return u.Type }

// Trigger starts a scene.
type Trigger struct {
	ID          string      `json:"id,omitempty"`
	Type        TriggerType `json:"type"`
	TriggeredAt *time.Time  `json:"triggered_at,omitempty"`
	Disabled    bool        `json:"disabled"`
	Detail      Detail      `json:"-"`
}

// triggerJSON is the local (snake_case) shape of a trigger record.
type triggerJSON struct {
	ID          string          `json:"id,omitempty"`
	Type        TriggerType     `json:"type"`
	TriggeredAt *time.Time      `json:"triggered_at,omitempty"`
	Disabled    bool            `json:"disabled"`
	Trigger     json.RawMessage `json:"trigger,omitempty"`
}

// UnmarshalJSON decodes a snake_case trigger and picks its detail by type.
func (t *Trigger) UnmarshalJSON(b []byte) error {
	var tj triggerJSON
	if err := json.Unmarshal(b, &tj); err != nil {
		return err
	}
	*t = Trigger{ID: tj.ID, Type: tj.Type, TriggeredAt: tj.TriggeredAt, Disabled: tj.Disabled}

	var detail Detail
	switch tj.Type {
	case TriggerApp:
		return nil
	case TriggerController:
		detail = &ControllerTrigger{}
	case TriggerSunriseSunset:
		detail = &SunriseSunsetTrigger{}
	case TriggerTime:
		detail = &TimeTrigger{}
	default:
		t.Detail = &UnknownTrigger{Type: tj.Type, Raw: tj.Trigger}
		return nil
	}
	if len(tj.Trigger) == 0 || string(tj.Trigger) == "null" {
		return nil
	}
	if err := json.Unmarshal(tj.Trigger, detail); err != nil {
		return fmt.Errorf("%s trigger: %w", tj.Type, err)
	}
	t.Detail = detail
	return nil
}

// MarshalJSON encodes the trigger in its local snake_case shape.
func (t Trigger) MarshalJSON() ([]byte, error) {
	tj := triggerJSON{ID: t.ID, Type: t.Type, TriggeredAt: t.TriggeredAt, Disabled: t.Disabled}
	switch d := t.Detail.(type) {
	case nil:
	case *UnknownTrigger:
		tj.Trigger = d.Raw
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		tj.Trigger = b
	}
	if tj.Type == "" && t.Detail != nil {
		tj.Type = t.Detail.triggerType()
	}
	return json.Marshal(tj)
}
