package hub_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/device/devicetest"
	"github.com/urmzd/dirigera/pkg/hub"
	"github.com/urmzd/dirigera/pkg/scene"
)

const lightA = `{"id":"light-a","type":"light","deviceType":"light","isReachable":true,
	"attributes":{"customName":"Bed","isOn":true,"lightLevel":40},
	"capabilities":{"canSend":[],"canReceive":["customName","isOn","lightLevel"]}}`

const lightB = `{"id":"light-b","type":"light","deviceType":"light","isReachable":false,
	"attributes":{"customName":"Desk","isOn":false,"lightLevel":10},
	"capabilities":{"canSend":[],"canReceive":["customName","isOn","lightLevel"]}}`

const brokenLight = `{"id":"light-c","type":"light","deviceType":"light","isReachable":true,
	"attributes":{"customName":"Broken"}}`

const outlet = `{"id":"outlet-1","type":"outlet","deviceType":"outlet","isReachable":true,
	"attributes":{"customName":"Kettle","isOn":false},
	"capabilities":{"canSend":[],"canReceive":["customName","isOn"]}}`

const waterSensor = `{"id":"leak-1","type":"sensor","deviceType":"waterSensor","isReachable":true,
	"attributes":{"customName":"Sink","waterLeakDetected":true}}`

func newHub(t *testing.T) (*hub.Hub, *devicetest.Transport) {
	t.Helper()
	tr := devicetest.New()
	tr.Reply(http.MethodGet, "/devices", "["+lightA+","+brokenLight+","+outlet+","+lightB+","+waterSensor+"]")
	tr.Reply(http.MethodGet, "/devices/light-a", lightA)
	tr.Reply(http.MethodGet, "/devices/outlet-1", outlet)
	return hub.New(tr), tr
}

func TestDevicesIsolatesBadRecords(t *testing.T) {
	h, _ := newHub(t)

	devices, err := h.Devices(t.Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, device.ErrMalformedRecord)
	require.Len(t, devices, 4)

	kinds := make([]device.Kind, 0, len(devices))
	for _, d := range devices {
		kinds = append(kinds, d.Kind())
	}
	assert.Equal(t, []device.Kind{device.KindLight, device.KindOutlet, device.KindLight, device.KindWaterSensor}, kinds)
}

func TestLightsFiltersByKind(t *testing.T) {
	h, _ := newHub(t)

	lights, err := h.Lights(t.Context())
	assert.ErrorIs(t, err, device.ErrMalformedRecord)
	require.Len(t, lights, 2)
	assert.Equal(t, "light-a", lights[0].ID)
	assert.Equal(t, "light-b", lights[1].ID)

	sensors, _ := h.WaterSensors(t.Context())
	require.Len(t, sensors, 1)
	assert.True(t, sensors[0].Attributes.WaterLeakDetected)

	blinds, _ := h.Blinds(t.Context())
	assert.Empty(t, blinds)
}

func TestLightByName(t *testing.T) {
	h, _ := newHub(t)

	l, err := h.LightByName(t.Context(), "Desk")
	require.NoError(t, err)
	assert.Equal(t, "light-b", l.ID)

	_, err = h.LightByName(t.Context(), "Kitchen")
	assert.ErrorIs(t, err, device.ErrNotFound)

	_, err = h.LightByName(t.Context(), "Kettle")
	assert.ErrorIs(t, err, device.ErrNotFound)
}

func TestDeviceByName(t *testing.T) {
	h, _ := newHub(t)

	d, err := h.DeviceByName(t.Context(), "Kettle")
	require.NoError(t, err)
	assert.Equal(t, device.KindOutlet, d.Kind())
}

func TestLightByID(t *testing.T) {
	h, tr := newHub(t)

	l, err := h.Light(t.Context(), "light-a")
	require.NoError(t, err)
	assert.Equal(t, "Bed", l.Attributes.CustomName)

	_, err = h.Light(t.Context(), "outlet-1")
	assert.ErrorIs(t, err, device.ErrTypeMismatch)

	_, err = h.Light(t.Context(), "nope")
	assert.ErrorIs(t, err, device.ErrNotFound)

	require.NoError(t, l.SetLightLevel(t.Context(), 80))
	patches := tr.CallsFor(http.MethodPatch)
	require.Len(t, patches, 1)
	assert.Equal(t, "/devices/light-a", patches[0].Path)
	assert.JSONEq(t, `[{"attributes":{"lightLevel":80}}]`, string(patches[0].Body))
}

func TestDeviceTransportFailure(t *testing.T) {
	tr := devicetest.New()
	tr.Fail(http.MethodGet, "/devices", &device.HTTPError{Method: http.MethodGet, Path: "/devices", StatusCode: http.StatusBadGateway})
	h := hub.New(tr)

	devices, err := h.Devices(t.Context())
	assert.Nil(t, devices)
	assert.ErrorIs(t, err, device.ErrHTTPFailure)

	_, err = h.LightByName(t.Context(), "Bed")
	assert.ErrorIs(t, err, device.ErrHTTPFailure)
	assert.NotErrorIs(t, err, device.ErrNotFound)
}

func TestScenesAndRooms(t *testing.T) {
	tr := devicetest.New()
	tr.Reply(http.MethodGet, "/scenes", `[
		{"id":"s1","type":"userScene","info":{"name":"Movie","icon":"scenes_tv"},"triggers":[],"actions":[]},
		{"id":"s2","type":"userScene","info":{"name":"Night","icon":"scenes_moon"},"triggers":[],"actions":[]}
	]`)
	tr.Reply(http.MethodGet, "/rooms", `[{"id":"r1","name":"Bedroom","color":"ikea_yellow_no_24","icon":"rooms_bed"}]`)
	h := hub.New(tr)

	s, err := h.SceneByName(t.Context(), "Night")
	require.NoError(t, err)
	assert.Equal(t, "s2", s.ID)

	_, err = h.SceneByName(t.Context(), "Party")
	assert.ErrorIs(t, err, device.ErrNotFound)

	rooms, err := h.Rooms(t.Context())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Bedroom", rooms[0].Name)
}

func TestCreateSceneFetchesResult(t *testing.T) {
	tr := devicetest.New()
	tr.Reply(http.MethodPost, "/scenes", `{"id":"new-1"}`)
	tr.Reply(http.MethodGet, "/scenes/new-1", `{"id":"new-1","type":"userScene","info":{"name":"Evening","icon":"scenes_book"}}`)
	h := hub.New(tr)

	s, err := h.CreateScene(t.Context(), scene.Spec{Info: scene.Info{Name: "Evening", Icon: scene.IconBook}})
	require.NoError(t, err)
	assert.Equal(t, "new-1", s.ID)
	assert.Equal(t, "Evening", s.Info.Name)
}

func TestStatus(t *testing.T) {
	tr := devicetest.New()
	tr.Reply(http.MethodGet, "/hub/status", `{"id":"hub-1","attributes":{"firmwareVersion":"2.440.1"}}`)
	h := hub.New(tr)

	status, err := h.Status(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "hub-1", status["id"])
}
