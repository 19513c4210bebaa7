package device

import (
	"context"
	"fmt"
)

// BlindAttributes are the attributes of a motorised blind.
type BlindAttributes struct {
	Attributes
	BlindsCurrentLevel *int    `json:"blinds_current_level,omitempty"` // 0 open, 100 closed
	BlindsTargetLevel  *int    `json:"blinds_target_level,omitempty"`
	BlindsState        *string `json:"blinds_state,omitempty"`
	BatteryPercentage  *int    `json:"battery_percentage,omitempty"`
}

// Blind is a window blind or curtain.
type Blind struct {
	Core
	Attributes BlindAttributes `json:"attributes"`
}

func (b *Blind) Kind() Kind { return KindBlind }

func (b *Blind) Common() *Attributes { return &b.Attributes.Attributes }

// Reload refreshes the blind from the hub.
func (b *Blind) Reload(ctx context.Context) error {
	return reload(ctx, b, KindBlind)
}

// SetName renames the blind.
func (b *Blind) SetName(ctx context.Context, name string) error {
	if err := b.setName(ctx, name); err != nil {
		return err
	}
	b.Attributes.CustomName = name
	return nil
}

// SetTargetLevel moves the blind towards level, 0 (open) to 100 (closed)
// inclusive. The current level is left alone; the hub reports it as the
// blind moves.
func (b *Blind) SetTargetLevel(ctx context.Context, level int) error {
	if err := b.Capabilities.AssertWritable(AttrBlindsTargetLevel); err != nil {
		return err
	}
	if level < 0 || level > 100 {
		return fmt.Errorf("%w: %s must be between 0 and 100, got %d", ErrValidation, AttrBlindsTargetLevel, level)
	}
	if err := b.send(ctx, map[string]any{AttrBlindsTargetLevel: level}); err != nil {
		return err
	}
	b.Attributes.BlindsTargetLevel = &level
	return nil
}
