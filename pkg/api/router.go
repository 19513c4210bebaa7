package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/urmzd/dirigera/pkg/api/handlers"
	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/room"
	"github.com/urmzd/dirigera/pkg/scene"
)

// Hub is what the REST bridge needs from the hub. *hub.Hub satisfies it.
type Hub interface {
	Status(ctx context.Context) (map[string]any, error)
	Devices(ctx context.Context) ([]device.Device, error)
	Device(ctx context.Context, id string) (device.Device, error)
	Scenes(ctx context.Context) ([]*scene.Scene, error)
	Scene(ctx context.Context, id string) (*scene.Scene, error)
	Rooms(ctx context.Context) ([]*room.Room, error)
	Room(ctx context.Context, id string) (*room.Room, error)
}

// Router holds the Gin engine and dependencies
type Router struct {
	engine     *gin.Engine
	hub        Hub
	subscriber handlers.Subscriber
}

// NewRouter creates a new API router
func NewRouter(hub Hub, subscriber handlers.Subscriber) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:     engine,
		hub:        hub,
		subscriber: subscriber,
	}
	router.setupRoutes()
	return router
}

func (r *Router) setupRoutes() {
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := handlers.NewHealthHandler(r.hub)
	r.engine.GET("/health", healthHandler.Health)

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Health)

		devicesHandler := handlers.NewDevicesHandler(r.hub)
		controlHandler := handlers.NewControlHandler(r.hub)
		devices := v1.Group("/devices")
		{
			devices.GET("", devicesHandler.ListDevices)
			devices.GET("/:id", devicesHandler.GetDevice)
			devices.PATCH("/:id", controlHandler.UpdateDevice)
		}

		scenesHandler := handlers.NewScenesHandler(r.hub)
		scenes := v1.Group("/scenes")
		{
			scenes.GET("", scenesHandler.ListScenes)
			scenes.GET("/:id", scenesHandler.GetScene)
			scenes.POST("/:id/trigger", scenesHandler.TriggerScene)
			scenes.POST("/:id/undo", scenesHandler.UndoScene)
		}

		roomsHandler := handlers.NewRoomsHandler(r.hub)
		rooms := v1.Group("/rooms")
		{
			rooms.GET("", roomsHandler.ListRooms)
			rooms.GET("/:id", roomsHandler.GetRoom)
			rooms.PATCH("/:id", roomsHandler.RenameRoom)
		}

		if r.subscriber != nil {
			v1.GET("/events", handlers.NewEventsHandler(r.subscriber).Events)
		}
	}
}

// Handler exposes the engine for http.Server and tests.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run serves on addr until ctx ends, then shuts down gracefully.
func (r *Router) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: r.engine}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
