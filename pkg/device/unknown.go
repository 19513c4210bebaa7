package device

import (
	"context"
	"fmt"
)

// Unknown holds a record whose kind this package does not model, such as a
// speaker or the gateway itself. Its attributes are kept verbatim, with
// snake_case keys, in Raw.
type Unknown struct {
	Core
	Attributes Attributes     `json:"attributes"`
	Raw        map[string]any `json:"-"`
}

func (u *Unknown) Kind() Kind { return KindUnknown }

func (u *Unknown) Common() *Attributes { return &u.Attributes }

// Reload refreshes the record from the hub.
func (u *Unknown) Reload(ctx context.Context) error {
	raw, err := u.refresh(ctx)
	if err != nil {
		return err
	}
	fresh, err := decodeUnknown(raw, u.transport)
	if err != nil {
		return fmt.Errorf("reload device %s: %w", u.ID, err)
	}
	*u = *fresh
	return nil
}

// SetName renames the device.
func (u *Unknown) SetName(ctx context.Context, name string) error {
	if err := u.setName(ctx, name); err != nil {
		return err
	}
	u.Attributes.CustomName = name
	if u.Raw != nil {
		u.Raw[AttrCustomName] = name
	}
	return nil
}
