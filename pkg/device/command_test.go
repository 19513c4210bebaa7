package device_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/device/devicetest"
)

func ptr[T any](v T) *T { return &v }

func TestApply_Light(t *testing.T) {
	tr := devicetest.New()
	l := newLight(t, tr, lightRecord)

	err := device.Apply(t.Context(), l, device.Command{
		IsOn:            ptr(true),
		LightLevel:      ptr(60),
		ColorHue:        ptr(30.0),
		ColorSaturation: ptr(0.5),
	})
	require.NoError(t, err)

	calls := tr.Calls()
	require.Len(t, calls, 3)
	assert.JSONEq(t, `[{"attributes":{"isOn":true}}]`, string(calls[0].Body))
	assert.JSONEq(t, `[{"attributes":{"lightLevel":60}}]`, string(calls[1].Body))
	assert.JSONEq(t, `[{"attributes":{"colorHue":30,"colorSaturation":0.5}}]`, string(calls[2].Body))
	assert.True(t, l.Attributes.IsOn)
	assert.Equal(t, 60, *l.Attributes.LightLevel)
}

func TestApply_RejectsFieldsBeforeSending(t *testing.T) {
	tr := devicetest.New()
	b, err := device.DecodeBlind([]byte(blindRecord), tr)
	require.NoError(t, err)

	err = device.Apply(t.Context(), b, device.Command{BlindsTargetLevel: ptr(40), IsOn: ptr(true)})

	assert.ErrorIs(t, err, device.ErrCapabilityUnsupported)
	assert.Empty(t, tr.Calls())
}

func TestApply_HalfColor(t *testing.T) {
	tr := devicetest.New()
	l := newLight(t, tr, lightRecord)

	err := device.Apply(t.Context(), l, device.Command{ColorHue: ptr(30.0)})

	assert.ErrorIs(t, err, device.ErrValidation)
	assert.Empty(t, tr.Calls())
}

func TestApply_Empty(t *testing.T) {
	l := newLight(t, devicetest.New(), lightRecord)

	assert.ErrorIs(t, device.Apply(t.Context(), l, device.Command{}), device.ErrValidation)
}

func TestApply_RenameSensor(t *testing.T) {
	tr := devicetest.New()
	d, err := device.Decode([]byte(waterSensorRecord), tr)
	require.NoError(t, err)

	require.NoError(t, device.Apply(t.Context(), d, device.Command{CustomName: ptr("Bathroom")}))

	assert.Equal(t, "Bathroom", device.Name(d))
	assert.Len(t, tr.Calls(), 1)
}

func TestApply_StopsAtFirstFailure(t *testing.T) {
	tr := devicetest.New()
	l := newLight(t, tr, lightRecord)

	err := device.Apply(t.Context(), l, device.Command{IsOn: ptr(true), LightLevel: ptr(0)})

	assert.ErrorIs(t, err, device.ErrValidation)
	assert.Len(t, tr.Calls(), 1)
	assert.True(t, l.Attributes.IsOn)
}

func TestDecodeCommand(t *testing.T) {
	cmd, err := device.DecodeCommand([]byte(`{"is_on": true, "light_level": 70}`))
	require.NoError(t, err)
	assert.Equal(t, []string{device.AttrIsOn, device.AttrLightLevel}, cmd.Fields())
	assert.Equal(t, 70, *cmd.LightLevel)

	cmd, err = device.DecodeCommand([]byte(`{"fan_mode": "auto"}`))
	require.NoError(t, err)
	assert.Equal(t, device.FanAuto, *cmd.FanMode)
}

func TestDecodeCommand_Invalid(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"brightness": 10}`,
		`{"is_on": "yes"}`,
		`{"light_level": 4.5}`,
		`{"color_hue": 10}`,
		`{"fan_mode": "turbo"}`,
		`{"startup_on_off": "startBlink"}`,
		`[]`,
		`not json`,
	}
	for _, body := range bodies {
		_, err := device.DecodeCommand([]byte(body))
		assert.ErrorIs(t, err, device.ErrValidation, body)
	}
}
