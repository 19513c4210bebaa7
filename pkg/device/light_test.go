package device_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/device/devicetest"
)

func TestLight_SetLightLevel(t *testing.T) {
	tr := devicetest.New()
	l := newLight(t, tr, lightRecord)

	require.NoError(t, l.SetLightLevel(t.Context(), 80))

	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "PATCH", calls[0].Method)
	assert.Equal(t, "/devices/"+lightID, calls[0].Path)
	assert.JSONEq(t, `[{"attributes":{"lightLevel":80}}]`, string(calls[0].Body))
	assert.Equal(t, 80, *l.Attributes.LightLevel)
}

func TestLight_SetLightLevel_Bounds(t *testing.T) {
	for _, level := range []int{0, 101, -5} {
		tr := devicetest.New()
		l := newLight(t, tr, lightRecord)

		err := l.SetLightLevel(t.Context(), level)

		assert.ErrorIs(t, err, device.ErrValidation, "level %d", level)
		assert.Empty(t, tr.Calls(), "level %d", level)
		assert.Equal(t, 43, *l.Attributes.LightLevel, "level %d", level)
	}

	for _, level := range []int{1, 100} {
		tr := devicetest.New()
		l := newLight(t, tr, lightRecord)

		require.NoError(t, l.SetLightLevel(t.Context(), level), "level %d", level)
		assert.Len(t, tr.Calls(), 1)
	}
}

func TestLight_CapabilityGate(t *testing.T) {
	record := withField(t, lightRecord, "capabilities", map[string]any{
		"canSend":    []any{},
		"canReceive": []any{"customName", "isOn"},
	})
	tr := devicetest.New()
	l := newLight(t, tr, record)

	err := l.SetLightLevel(t.Context(), 80)
	assert.ErrorIs(t, err, device.ErrCapabilityUnsupported)
	assert.ErrorContains(t, err, "lightLevel")

	// Gate runs before validation.
	err = l.SetLightLevel(t.Context(), 500)
	assert.ErrorIs(t, err, device.ErrCapabilityUnsupported)

	assert.ErrorIs(t, l.SetColorTemperature(t.Context(), 2710), device.ErrCapabilityUnsupported)
	assert.ErrorIs(t, l.SetColor(t.Context(), 10, 0.5), device.ErrCapabilityUnsupported)
	assert.ErrorIs(t, l.SetStartupBehaviour(t.Context(), device.StartOn), device.ErrCapabilityUnsupported)

	assert.Empty(t, tr.Calls())
	assert.Equal(t, 43, *l.Attributes.LightLevel)
}

func TestLight_SetColorTemperature(t *testing.T) {
	tr := devicetest.New()
	l := newLight(t, tr, lightRecord)

	require.NoError(t, l.SetColorTemperature(t.Context(), 2710))
	assert.Equal(t, 2710, *l.Attributes.ColorTemperature)

	for _, k := range []int{1000, 5000, 2201, 4001} {
		assert.ErrorIs(t, l.SetColorTemperature(t.Context(), k), device.ErrValidation, "kelvin %d", k)
	}
	for _, k := range []int{2202, 4000} {
		assert.NoError(t, l.SetColorTemperature(t.Context(), k), "kelvin %d", k)
	}

	patches := tr.CallsFor("PATCH")
	require.Len(t, patches, 3)
	assert.JSONEq(t, `[{"attributes":{"colorTemperature":2710}}]`, string(patches[0].Body))
}

func TestLight_SetColorTemperature_MissingBounds(t *testing.T) {
	tests := map[string]map[string]any{
		"no min":  {"colorTemperatureMin": nil},
		"no max":  {"colorTemperatureMax": nil},
		"neither": {"colorTemperatureMin": nil, "colorTemperatureMax": nil},
	}
	for name, attrs := range tests {
		t.Run(name, func(t *testing.T) {
			tr := devicetest.New()
			l := newLight(t, tr, withAttrs(t, lightRecord, attrs))

			err := l.SetColorTemperature(t.Context(), 3000)

			assert.ErrorIs(t, err, device.ErrMissingPrecondition)
			assert.ErrorIs(t, err, device.ErrValidation)
			assert.Empty(t, tr.Calls())
		})
	}
}

func TestLight_SetColor(t *testing.T) {
	tr := devicetest.New()
	l := newLight(t, tr, lightRecord)

	require.NoError(t, l.SetColor(t.Context(), 120, 0.4))

	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `[{"attributes":{"colorHue":120,"colorSaturation":0.4}}]`, string(calls[0].Body))
	assert.Equal(t, 120.0, *l.Attributes.ColorHue)
	assert.Equal(t, 0.4, *l.Attributes.ColorSaturation)

	assert.ErrorIs(t, l.SetColor(t.Context(), 361, 0.4), device.ErrValidation)
	assert.ErrorIs(t, l.SetColor(t.Context(), 120, 1.1), device.ErrValidation)
	assert.Len(t, tr.Calls(), 1)
}

func TestLight_SetOnAndName(t *testing.T) {
	tr := devicetest.New()
	l := newLight(t, tr, lightRecord)

	require.NoError(t, l.SetOn(t.Context(), true))
	require.NoError(t, l.SetName(t.Context(), "Reading lamp"))

	calls := tr.Calls()
	require.Len(t, calls, 2)
	assert.JSONEq(t, `[{"attributes":{"isOn":true}}]`, string(calls[0].Body))
	assert.JSONEq(t, `[{"attributes":{"customName":"Reading lamp"}}]`, string(calls[1].Body))
	assert.True(t, l.Attributes.IsOn)
	assert.Equal(t, "Reading lamp", l.Attributes.CustomName)

	assert.ErrorIs(t, l.SetName(t.Context(), ""), device.ErrValidation)
}

func TestLight_SetStartupBehaviour(t *testing.T) {
	record := withField(t, lightRecord, "capabilities", map[string]any{
		"canSend":    []any{},
		"canReceive": []any{"customName", "isOn", "startupOnOff"},
	})
	tr := devicetest.New()
	l := newLight(t, tr, record)

	require.NoError(t, l.SetStartupBehaviour(t.Context(), device.StartPrevious))
	assert.Equal(t, device.StartPrevious, *l.Attributes.StartupOnOff)
	assert.JSONEq(t, `[{"attributes":{"startupOnOff":"startPrevious"}}]`, string(tr.Calls()[0].Body))

	assert.ErrorIs(t, l.SetStartupBehaviour(t.Context(), "startBlink"), device.ErrValidation)
	assert.Len(t, tr.Calls(), 1)
}

func TestLight_TransportFailureLeavesStateUntouched(t *testing.T) {
	tr := devicetest.New()
	tr.Fail("PATCH", "/devices/"+lightID, &device.HTTPError{Method: "PATCH", StatusCode: 503})
	l := newLight(t, tr, lightRecord)

	err := l.SetLightLevel(t.Context(), 80)

	assert.ErrorIs(t, err, device.ErrHTTPFailure)
	assert.Equal(t, 43, *l.Attributes.LightLevel)
}

func TestLight_Reload(t *testing.T) {
	tr := devicetest.New()
	l := newLight(t, tr, lightRecord)
	tr.Reply("GET", "/devices/"+lightID, withAttrs(t, lightRecord, map[string]any{"lightLevel": 12, "isOn": true}))

	require.NoError(t, l.Reload(t.Context()))
	first := *l
	require.NoError(t, l.Reload(t.Context()))

	assert.Equal(t, first, *l)
	assert.Equal(t, 12, *l.Attributes.LightLevel)
	assert.True(t, l.Attributes.IsOn)

	// Still bound to the transport after reload.
	require.NoError(t, l.SetLightLevel(t.Context(), 50))
	assert.Len(t, tr.CallsFor("PATCH"), 1)
}

func TestLight_Reload_KindChanged(t *testing.T) {
	tr := devicetest.New()
	l := newLight(t, tr, lightRecord)
	tr.Reply("GET", "/devices/"+lightID, withField(t, blindRecord, "id", lightID))

	err := l.Reload(t.Context())

	assert.ErrorIs(t, err, device.ErrTypeMismatch)
	assert.Equal(t, "Bed", l.Attributes.CustomName)
}

func TestDetachedDevice(t *testing.T) {
	l := &device.Light{}
	l.ID = "x"
	l.Capabilities.CanReceive = []string{"isOn"}

	assert.ErrorIs(t, l.SetOn(t.Context(), true), device.ErrNoTransport)
	assert.ErrorIs(t, l.Reload(t.Context()), device.ErrNoTransport)
}
