package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/dirigera/pkg/api/types"
	"github.com/urmzd/dirigera/pkg/device"
)

// DeviceSource lists and fetches devices.
type DeviceSource interface {
	Devices(ctx context.Context) ([]device.Device, error)
	Device(ctx context.Context, id string) (device.Device, error)
}

// DevicesHandler handles device read endpoints
type DevicesHandler struct {
	hub DeviceSource
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(hub DeviceSource) *DevicesHandler {
	return &DevicesHandler{hub: hub}
}

// ListDevices handles GET /devices
// @Summary      List devices
// @Description  Returns every device the hub knows. Records that fail to decode are reported in errors.
// @Tags         devices
// @Produce      json
// @Param        kind  query     string  false  "Only devices of this kind (light, blinds, outlet, ...)"
// @Success      200   {object}  types.ListDevicesResponse
// @Failure      502   {object}  types.ErrorResponse  "Hub error"
// @Failure      504   {object}  types.ErrorResponse  "Request timed out"
// @Router       /devices [get]
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	devices, err := h.hub.Devices(c.Request.Context())
	if devices == nil && err != nil {
		writeError(c, err)
		return
	}

	kind := device.Kind(c.Query("kind"))
	views := make([]types.DeviceView, 0, len(devices))
	for _, d := range devices {
		if kind != "" && d.Kind() != kind {
			continue
		}
		views = append(views, types.NewDeviceView(d))
	}

	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Devices: views,
		Count:   len(views),
		Errors:  partial(err),
	})
}

// GetDevice handles GET /devices/:id
// @Summary      Get a device
// @Description  Returns the hub's current record for one device
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device id"
// @Success      200  {object}  types.DeviceResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      502  {object}  types.ErrorResponse  "Hub error"
// @Router       /devices/{id} [get]
func (h *DevicesHandler) GetDevice(c *gin.Context) {
	d, err := h.hub.Device(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DeviceResponse{Device: types.NewDeviceView(d)})
}
