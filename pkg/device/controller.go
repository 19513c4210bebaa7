package device

import "context"

// ControllerAttributes are the attributes of a remote or wall switch.
type ControllerAttributes struct {
	Attributes
	IsOn              *bool   `json:"is_on,omitempty"`
	BatteryPercentage *int    `json:"battery_percentage,omitempty"`
	SwitchLabel       *string `json:"switch_label,omitempty"`
}

// Controller is a battery remote, shortcut button or wall switch. Apart
// from its name it is read-only.
type Controller struct {
	Core
	Attributes ControllerAttributes `json:"attributes"`
}

func (c *Controller) Kind() Kind { return KindController }

func (c *Controller) Common() *Attributes { return &c.Attributes.Attributes }

// Reload refreshes the controller from the hub.
func (c *Controller) Reload(ctx context.Context) error {
	return reload(ctx, c, KindController)
}

// SetName renames the controller.
func (c *Controller) SetName(ctx context.Context, name string) error {
	if err := c.setName(ctx, name); err != nil {
		return err
	}
	c.Attributes.CustomName = name
	return nil
}
