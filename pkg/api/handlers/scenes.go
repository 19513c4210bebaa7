package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/dirigera/pkg/api/types"
	"github.com/urmzd/dirigera/pkg/scene"
)

// SceneSource lists and fetches scenes.
type SceneSource interface {
	Scenes(ctx context.Context) ([]*scene.Scene, error)
	Scene(ctx context.Context, id string) (*scene.Scene, error)
}

// ScenesHandler handles scene endpoints
type ScenesHandler struct {
	hub SceneSource
}

// NewScenesHandler creates a new scenes handler
func NewScenesHandler(hub SceneSource) *ScenesHandler {
	return &ScenesHandler{hub: hub}
}

// ListScenes handles GET /scenes
// @Summary      List scenes
// @Tags         scenes
// @Produce      json
// @Success      200  {object}  types.ListScenesResponse
// @Failure      502  {object}  types.ErrorResponse  "Hub error"
// @Router       /scenes [get]
func (h *ScenesHandler) ListScenes(c *gin.Context) {
	scenes, err := h.hub.Scenes(c.Request.Context())
	if scenes == nil && err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ListScenesResponse{
		Scenes: scenes,
		Count:  len(scenes),
		Errors: partial(err),
	})
}

// GetScene handles GET /scenes/:id
// @Summary      Get a scene
// @Tags         scenes
// @Produce      json
// @Param        id   path      string  true  "Scene id"
// @Success      200  {object}  types.SceneResponse
// @Failure      404  {object}  types.ErrorResponse  "Scene not found"
// @Router       /scenes/{id} [get]
func (h *ScenesHandler) GetScene(c *gin.Context) {
	s, err := h.hub.Scene(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.SceneResponse{Scene: s})
}

// TriggerScene handles POST /scenes/:id/trigger
// @Summary      Trigger a scene
// @Tags         scenes
// @Produce      json
// @Param        id   path      string  true  "Scene id"
// @Success      202  {object}  types.SceneActionResponse
// @Failure      404  {object}  types.ErrorResponse  "Scene not found"
// @Failure      502  {object}  types.ErrorResponse  "Hub error"
// @Router       /scenes/{id}/trigger [post]
func (h *ScenesHandler) TriggerScene(c *gin.Context) {
	h.act(c, "trigger", (*scene.Scene).Trigger)
}

// UndoScene handles POST /scenes/:id/undo
// @Summary      Undo a scene
// @Description  Reverts the last trigger while the scene's undo window is open
// @Tags         scenes
// @Produce      json
// @Param        id   path      string  true  "Scene id"
// @Success      202  {object}  types.SceneActionResponse
// @Failure      404  {object}  types.ErrorResponse  "Scene not found"
// @Failure      502  {object}  types.ErrorResponse  "Hub error"
// @Router       /scenes/{id}/undo [post]
func (h *ScenesHandler) UndoScene(c *gin.Context) {
	h.act(c, "undo", (*scene.Scene).Undo)
}

func (h *ScenesHandler) act(c *gin.Context, action string, fn func(*scene.Scene, context.Context) error) {
	ctx := c.Request.Context()
	s, err := h.hub.Scene(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := fn(s, ctx); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, types.SceneActionResponse{Scene: s.ID, Action: action, At: time.Now()})
}
