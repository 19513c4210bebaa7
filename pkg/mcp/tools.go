package mcp

import "github.com/mark3labs/mcp-go/mcp"

const refDescription = "Device id or exact device name"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check whether the hub answers"),
		),
		s.handleGetHealth,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_devices",
			mcp.WithDescription("List every device on the hub with its current attributes"),
			mcp.WithString("kind",
				mcp.Description("Only devices of this kind (light, blinds, outlet, controller, environmentSensor, motionSensor, openCloseSensor, waterSensor, airPurifier)"),
			),
		),
		s.handleListDevices,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_device",
			mcp.WithDescription("Get one device by id or name"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(refDescription),
			),
		),
		s.handleGetDevice,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("rename_device",
			mcp.WithDescription("Change a device's name"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(refDescription),
			),
			mcp.WithString("new_name",
				mcp.Required(),
				mcp.Description("New name for the device"),
			),
		),
		s.handleRenameDevice,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_device_state",
			mcp.WithDescription("Change a device's state. Each field is checked against what the device accepts before anything is sent."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(refDescription),
			),
			mcp.WithObject("state",
				mcp.Required(),
				mcp.Description(`Fields to set, e.g. {"is_on": true, "light_level": 60}. Accepted: is_on, light_level (1-100), color_temperature (kelvin), color_hue (0-360) with color_saturation (0-1), startup_on_off, blinds_target_level (0-100), fan_mode, motor_state (0-50), child_lock, status_light, custom_name`),
			),
		),
		s.handleSetDeviceState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("turn_on",
			mcp.WithDescription("Turn on a light or outlet, optionally setting the light level"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(refDescription),
			),
			mcp.WithNumber("light_level",
				mcp.Description("Light level 1-100 (lights only)"),
			),
		),
		s.handleTurnOn,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("turn_off",
			mcp.WithDescription("Turn off a light or outlet"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description(refDescription),
			),
		),
		s.handleTurnOff,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_scenes",
			mcp.WithDescription("List the scenes stored on the hub"),
		),
		s.handleListScenes,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("trigger_scene",
			mcp.WithDescription("Run a scene"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Scene id or exact scene name"),
			),
		),
		s.handleTriggerScene,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("undo_scene",
			mcp.WithDescription("Revert a scene's last run while the hub still allows it"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Scene id or exact scene name"),
			),
		),
		s.handleUndoScene,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_rooms",
			mcp.WithDescription("List rooms"),
		),
		s.handleListRooms,
	)
}
