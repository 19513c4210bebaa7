package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/scene"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := GetHealthOutput{
		Status:    "healthy",
		Hub:       "reachable",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := s.hub.Status(ctx); err != nil {
		log.Debug().Err(err).Msg("hub status check failed")
		out.Status, out.Hub = "unhealthy", "unreachable"
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := s.hub.Devices(ctx)
	if devices == nil && err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list devices: %s", err)), nil
	}

	kind, _ := request.GetArguments()["kind"].(string)
	infos := make([]DeviceInfo, 0, len(devices))
	for _, d := range devices {
		if kind != "" && d.Kind() != device.Kind(kind) {
			continue
		}
		infos = append(infos, DeviceToInfo(d))
	}

	out := ListDevicesOutput{
		Devices: infos,
		Count:   len(infos),
		Skipped: skipped(err),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, err := s.findDevice(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("device not found: %s", err)), nil
	}

	out := GetDeviceOutput{Device: DeviceToInfo(d)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleRenameDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newName, err := requiredString(request, "new_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, err := s.findDevice(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("device not found: %s", err)), nil
	}
	old := device.Name(d)
	if err := d.SetName(ctx, newName); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to rename device: %s", err)), nil
	}

	out := RenameDeviceOutput{
		Success: true,
		Message: fmt.Sprintf("Device %q renamed to %q", old, newName),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSetDeviceState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	// State may be passed as a nested "state" object or as flat args
	state := map[string]any{}
	if raw, ok := args["state"]; ok {
		if sm, ok := raw.(map[string]any); ok {
			state = sm
		}
	} else {
		for k, v := range args {
			if k != "id" {
				state[k] = v
			}
		}
	}

	body, err := json.Marshal(state)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid state: %s", err)), nil
	}
	cmd, err := device.DecodeCommand(body)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.apply(ctx, ref, cmd)
}

func (s *Server) handleTurnOn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	on := true
	cmd := device.Command{IsOn: &on}
	if l, ok := request.GetArguments()["light_level"].(float64); ok {
		level := int(l)
		cmd.LightLevel = &level
	}
	return s.apply(ctx, ref, cmd)
}

func (s *Server) handleTurnOff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	off := false
	return s.apply(ctx, ref, device.Command{IsOn: &off})
}

func (s *Server) apply(ctx context.Context, ref string, cmd device.Command) (*mcp.CallToolResult, error) {
	d, err := s.findDevice(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("device not found: %s", err)), nil
	}
	if err := device.Apply(ctx, d, cmd); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set device state: %s", err)), nil
	}

	out := SetDeviceStateOutput{
		DeviceID: d.Base().ID,
		Changed:  cmd.Fields(),
		Device:   DeviceToInfo(d),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListScenes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenes, err := s.hub.Scenes(ctx)
	if scenes == nil && err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list scenes: %s", err)), nil
	}

	infos := make([]SceneInfo, 0, len(scenes))
	for _, sc := range scenes {
		infos = append(infos, SceneToInfo(sc))
	}

	out := ListScenesOutput{
		Scenes:  infos,
		Count:   len(infos),
		Skipped: skipped(err),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleTriggerScene(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.sceneAction(ctx, request, "trigger", (*scene.Scene).Trigger)
}

func (s *Server) handleUndoScene(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.sceneAction(ctx, request, "undo", (*scene.Scene).Undo)
}

func (s *Server) sceneAction(ctx context.Context, request mcp.CallToolRequest, action string, fn func(*scene.Scene, context.Context) error) (*mcp.CallToolResult, error) {
	ref, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sc, err := s.findScene(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scene not found: %s", err)), nil
	}
	if err := fn(sc, ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s scene: %s", action, err)), nil
	}

	out := SceneActionOutput{
		SceneID: sc.ID,
		Action:  action,
		Message: fmt.Sprintf("Scene %q: %s sent", sc.Info.Name, action),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rooms, err := s.hub.Rooms(ctx)
	if rooms == nil && err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list rooms: %s", err)), nil
	}

	out := ListRoomsOutput{
		Rooms:   rooms,
		Count:   len(rooms),
		Skipped: skipped(err),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

// findDevice looks ref up as an id first, then as a name.
func (s *Server) findDevice(ctx context.Context, ref string) (device.Device, error) {
	d, err := s.hub.Device(ctx, ref)
	if errors.Is(err, device.ErrNotFound) {
		return s.hub.DeviceByName(ctx, ref)
	}
	return d, err
}

// findScene looks ref up as an id first, then as a name.
func (s *Server) findScene(ctx context.Context, ref string) (*scene.Scene, error) {
	sc, err := s.hub.Scene(ctx, ref)
	if errors.Is(err, device.ErrNotFound) {
		return s.hub.SceneByName(ctx, ref)
	}
	return sc, err
}

func skipped(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
