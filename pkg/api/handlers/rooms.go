package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/dirigera/pkg/api/types"
	"github.com/urmzd/dirigera/pkg/room"
)

// RoomSource lists and fetches rooms.
type RoomSource interface {
	Rooms(ctx context.Context) ([]*room.Room, error)
	Room(ctx context.Context, id string) (*room.Room, error)
}

// RoomsHandler handles room endpoints
type RoomsHandler struct {
	hub RoomSource
}

// NewRoomsHandler creates a new rooms handler
func NewRoomsHandler(hub RoomSource) *RoomsHandler {
	return &RoomsHandler{hub: hub}
}

// ListRooms handles GET /rooms
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {object}  types.ListRoomsResponse
// @Failure      502  {object}  types.ErrorResponse  "Hub error"
// @Router       /rooms [get]
func (h *RoomsHandler) ListRooms(c *gin.Context) {
	rooms, err := h.hub.Rooms(c.Request.Context())
	if rooms == nil && err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ListRoomsResponse{
		Rooms:  rooms,
		Count:  len(rooms),
		Errors: partial(err),
	})
}

// GetRoom handles GET /rooms/:id
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        id   path      string  true  "Room id"
// @Success      200  {object}  types.RoomResponse
// @Failure      404  {object}  types.ErrorResponse  "Room not found"
// @Router       /rooms/{id} [get]
func (h *RoomsHandler) GetRoom(c *gin.Context) {
	r, err := h.hub.Room(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RoomResponse{Room: r})
}

// RenameRoom handles PATCH /rooms/:id
// @Summary      Rename a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Room id"
// @Param        request  body      types.RenameRequest  true  "New name"
// @Success      200      {object}  types.RoomResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Room not found"
// @Router       /rooms/{id} [patch]
func (h *RoomsHandler) RenameRoom(c *gin.Context) {
	var req types.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "name is required",
		})
		return
	}

	ctx := c.Request.Context()
	r, err := h.hub.Room(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := r.SetName(ctx, req.Name); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RoomResponse{Room: r})
}
