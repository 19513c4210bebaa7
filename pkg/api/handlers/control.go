package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/dirigera/pkg/api/types"
	"github.com/urmzd/dirigera/pkg/device"
)

// ControlHandler handles device write endpoints
type ControlHandler struct {
	hub DeviceSource
}

// NewControlHandler creates a new control handler
func NewControlHandler(hub DeviceSource) *ControlHandler {
	return &ControlHandler{hub: hub}
}

// UpdateDevice handles PATCH /devices/:id
// @Summary      Change device state
// @Description  Applies a partial state. Each field is checked against the device's writable capabilities and its valid range before it is sent.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Device id"
// @Param        request  body      device.Command  true  "Fields to change"
// @Success      200      {object}  types.DeviceResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid command or value out of range"
// @Failure      404      {object}  types.ErrorResponse  "Device not found"
// @Failure      409      {object}  types.ErrorResponse  "Attribute not writable on this device"
// @Failure      502      {object}  types.ErrorResponse  "Hub error"
// @Router       /devices/{id} [patch]
func (h *ControlHandler) UpdateDevice(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}
	cmd, err := device.DecodeCommand(body)
	if err != nil {
		writeError(c, err)
		return
	}

	d, err := h.hub.Device(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := device.Apply(ctx, d, cmd); err != nil {
		writeError(c, err)
		return
	}
	log.Debug().Str("device", d.Base().ID).Strs("fields", cmd.Fields()).Msg("device updated")

	c.JSON(http.StatusOK, types.DeviceResponse{Device: types.NewDeviceView(d)})
}
