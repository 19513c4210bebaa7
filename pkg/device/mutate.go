package device

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/urmzd/dirigera/pkg/wire"
)

// AttributesPatch builds the hub's write body from local attribute names:
// a one-element list holding {"attributes": {...}} with camelCase keys.
func AttributesPatch(attrs map[string]any) []map[string]any {
	out := make(map[string]any, len(attrs))
	for name, v := range attrs {
		out[wire.Camel(name)] = v
	}
	return []map[string]any{{"attributes": out}}
}

// Path returns the hub path of the device with the given id.
func Path(id string) string {
	return "/devices/" + url.PathEscape(id)
}

// GetRecord fetches one raw device record. A 404 becomes ErrNotFound.
func GetRecord(ctx context.Context, t Transport, id string) (json.RawMessage, error) {
	raw, err := t.Get(ctx, Path(id))
	if err != nil {
		return nil, NotFound(err, "device", id)
	}
	return raw, nil
}

// Fetch retrieves and decodes one device by id.
func Fetch(ctx context.Context, t Transport, id string) (Device, error) {
	raw, err := GetRecord(ctx, t, id)
	if err != nil {
		return nil, err
	}
	return Decode(raw, t)
}

// write gates, sends and reports the PATCH for attrs. Callers validate values
// first and update local fields only when write succeeds.
func (c *Core) write(ctx context.Context, attrs map[string]any) error {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	if err := c.Capabilities.AssertWritable(names...); err != nil {
		return err
	}
	return c.send(ctx, attrs)
}

func (c *Core) send(ctx context.Context, attrs map[string]any) error {
	if c.transport == nil {
		return fmt.Errorf("device %s: %w", c.ID, ErrNoTransport)
	}
	if _, err := c.transport.Patch(ctx, Path(c.ID), AttributesPatch(attrs)); err != nil {
		return fmt.Errorf("write %s to device %s: %w", joinKeys(attrs), c.ID, err)
	}
	return nil
}

// refresh fetches the device's current record.
func (c *Core) refresh(ctx context.Context) (json.RawMessage, error) {
	if c.transport == nil {
		return nil, fmt.Errorf("device %s: %w", c.ID, ErrNoTransport)
	}
	return GetRecord(ctx, c.transport, c.ID)
}

// setName writes custom_name; each variant stores the new name itself.
func (c *Core) setName(ctx context.Context, name string) error {
	if err := c.Capabilities.AssertWritable(AttrCustomName); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	return c.send(ctx, map[string]any{AttrCustomName: name})
}

func joinKeys(attrs map[string]any) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, wire.Camel(k))
	}
	return strings.Join(keys, ",")
}

// checkLevel enforces the inclusive 1..100 brightness range.
func checkLevel(attr string, v int) error {
	if v < 1 || v > 100 {
		return fmt.Errorf("%w: %s must be between 1 and 100, got %d", ErrValidation, attr, v)
	}
	return nil
}

// reload replaces dst with a freshly decoded record of the same kind.
func reload[T any, P entity[T]](ctx context.Context, dst P, kind Kind) error {
	raw, err := dst.Base().refresh(ctx)
	if err != nil {
		return err
	}
	fresh, err := decodeKind[T, P](raw, kind, dst.Base().transport)
	if err != nil {
		return err
	}
	*dst = *fresh
	return nil
}
