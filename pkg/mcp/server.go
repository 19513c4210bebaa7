package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/room"
	"github.com/urmzd/dirigera/pkg/scene"
)

// Hub is what the tools need from the hub. *hub.Hub satisfies it.
type Hub interface {
	Status(ctx context.Context) (map[string]any, error)
	Devices(ctx context.Context) ([]device.Device, error)
	Device(ctx context.Context, id string) (device.Device, error)
	DeviceByName(ctx context.Context, name string) (device.Device, error)
	Scenes(ctx context.Context) ([]*scene.Scene, error)
	Scene(ctx context.Context, id string) (*scene.Scene, error)
	SceneByName(ctx context.Context, name string) (*scene.Scene, error)
	Rooms(ctx context.Context) ([]*room.Room, error)
}

// Server wraps the MCP server with hub control tools
type Server struct {
	mcpServer *server.MCPServer
	hub       Hub
}

// NewServer creates a new MCP server for the hub
func NewServer(hub Hub) *Server {
	s := &Server{hub: hub}

	s.mcpServer = server.NewMCPServer(
		"dirigera",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
