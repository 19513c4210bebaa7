package device_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/device/devicetest"
)

const lightID = "23taswdg-sdf-4eeb-99c2-23asdf2gw"

const lightRecord = `{
  "id": "23taswdg-sdf-4eeb-99c2-23asdf2gw",
  "type": "light",
  "deviceType": "light",
  "createdAt": "2023-01-07T20:07:19.000Z",
  "isReachable": true,
  "lastSeen": "2023-10-28T04:42:14.000Z",
  "customIcon": "lighting_nightstand_light",
  "attributes": {
    "customName": "Bed",
    "model": "TRADFRIbulbE27WSglobeopal1055lm",
    "manufacturer": "IKEA of Sweden",
    "firmwareVersion": "1.0.012",
    "hardwareVersion": "1",
    "serialNumber": "04CD15FFFEC08659",
    "productCode": "LED2003G10",
    "isOn": false,
    "startupOnOff": "startOff",
    "lightLevel": 43,
    "colorTemperature": 2222,
    "colorTemperatureMin": 4000,
    "colorTemperatureMax": 2202,
    "startupTemperature": -1,
    "colorHue": 200,
    "colorSaturation": 0.7,
    "colorMode": "temperature",
    "identifyPeriod": 0,
    "permittingJoin": false,
    "otaStatus": "upToDate",
    "otaState": "readyToCheck",
    "otaProgress": 0,
    "otaPolicy": "autoUpdate",
    "otaScheduleStart": "00:00",
    "otaScheduleEnd": "00:00",
    "circadianRhythmMode": ""
  },
  "capabilities": {
    "canSend": [],
    "canReceive": ["customName", "isOn", "lightLevel", "colorTemperature", "colorSaturation", "colorHue"]
  },
  "room": {
    "id": "23g2w34-d0b7-42b3-a5a1-324zaerfg3",
    "name": "Bedroom",
    "color": "ikea_yellow_no_24",
    "icon": "rooms_bed"
  },
  "deviceSet": [],
  "remoteLinks": ["3838120-12f0-256-9c63-bdf2dfg232"],
  "isHidden": false
}`

const blindRecord = `{
  "id": "1237-343-2dfa",
  "type": "blind",
  "deviceType": "blinds",
  "createdAt": "2023-01-07T20:07:19.000Z",
  "isReachable": true,
  "lastSeen": "2023-10-28T04:42:15.000Z",
  "attributes": {
    "customName": "Light 2",
    "model": "FYRTUR",
    "manufacturer": "IKEA of Sweden",
    "firmwareVersion": "2.3.093",
    "serialNumber": "84",
    "hardwareVersion": "2",
    "blindsTargetLevel": 15,
    "blindsCurrentLevel": 90,
    "blindsState": "down",
    "productCode": "LED2003G10"
  },
  "capabilities": {
    "canSend": [],
    "canReceive": ["customName", "blindsCurrentLevel", "blindsTargetLevel", "blindsState"]
  },
  "room": {"id": "23g2w34-d0b7-42b3-a5a1-324zaerfg3", "name": "Bedroom", "color": "ikea_yellow_no_24", "icon": "rooms_bed"},
  "deviceSet": [],
  "remoteLinks": ["3838120-12f0-256-9c63-bdf2dfg232"]
}`

const environmentSensorRecord = `{
  "id": "75863f6a-d850-47f1-8a00-e31acdcae0e8_1",
  "type": "sensor",
  "deviceType": "environmentSensor",
  "createdAt": "2023-04-04T13:13:25.000Z",
  "isReachable": true,
  "lastSeen": "2023-10-28T14:19:24.000Z",
  "attributes": {
    "customName": "Envsensor",
    "model": "VINDSTYRKA",
    "manufacturer": "IKEA of Sweden",
    "firmwareVersion": "1.0.11",
    "hardwareVersion": "1",
    "serialNumber": "F4B3B1FFFE00101E",
    "productCode": "E2112",
    "currentTemperature": 21.1,
    "currentRH": 61,
    "currentPM25": 1,
    "maxMeasuredPM25": 999,
    "minMeasuredPM25": 0,
    "vocIndex": 63
  },
  "capabilities": {"canSend": [], "canReceive": ["customName"]},
  "room": {"id": "acaff5ef-2840-45a9-bbc9-19aa77553369", "name": "Living room", "color": "ikea_green_no_65", "icon": "rooms_sofa"},
  "deviceSet": [],
  "remoteLinks": [],
  "isHidden": false
}`

const airPurifierRecord = `{
  "id": "d121f38a-fc37-4bd9-8a3c-f79e4f45fccf_1",
  "type": "airPurifier",
  "deviceType": "airPurifier",
  "createdAt": "2023-08-09T12:31:59.000Z",
  "isReachable": true,
  "lastSeen": "2024-02-21T19:55:44.000Z",
  "attributes": {
    "customName": "Air Purifier",
    "model": "STARKVIND Air purifier",
    "fanMode": "auto",
    "fanModeSequence": "lowMediumHighAuto",
    "motorRuntime": 106570,
    "motorState": 15,
    "filterAlarmStatus": false,
    "filterElapsedTime": 227980,
    "filterLifetime": 259200,
    "childLock": false,
    "statusLight": true,
    "currentPM25": 3
  },
  "capabilities": {
    "canSend": [],
    "canReceive": ["customName", "fanMode", "fanModeSequence", "motorState", "childLock", "statusLight"]
  },
  "deviceSet": [],
  "remoteLinks": []
}`

const motionSensorRecord = `{
  "id": "62e95143-c8b6-4f28-b581-adfd622c0db7_1",
  "type": "sensor",
  "deviceType": "motionSensor",
  "isReachable": true,
  "attributes": {
    "customName": "Bewegungssensor",
    "manufacturer": "SONOFF",
    "isOn": false,
    "sensorConfig": {
      "scheduleOn": false,
      "onDuration": 120,
      "schedule": {
        "onCondition": {"time": "sunset", "offset": -60},
        "offCondition": {"time": "sunrise", "offset": 60}
      }
    }
  },
  "capabilities": {"canSend": ["isOn", "lightLevel"], "canReceive": ["customName"]},
  "deviceSet": [],
  "remoteLinks": []
}`

const outletRecord = `{
  "id": "outlet-1",
  "type": "outlet",
  "deviceType": "outlet",
  "isReachable": true,
  "attributes": {
    "customName": "Kitchen plug",
    "isOn": true,
    "startupOnOff": "startPrevious",
    "statusLight": true,
    "childLock": false,
    "currentActivePower": 12.5,
    "totalEnergyConsumed": 3.2
  },
  "capabilities": {
    "canSend": [],
    "canReceive": ["customName", "isOn", "startupOnOff", "statusLight", "childLock"]
  }
}`

const openCloseRecord = `{
  "id": "door-1",
  "type": "sensor",
  "deviceType": "openCloseSensor",
  "isReachable": true,
  "attributes": {"customName": "Front door", "isOpen": true, "batteryPercentage": 88},
  "capabilities": {"canSend": [], "canReceive": ["customName"]}
}`

const waterSensorRecord = `{
  "id": "leak-1",
  "type": "sensor",
  "deviceType": "waterSensor",
  "isReachable": true,
  "attributes": {"customName": "Sink", "waterLeakDetected": false},
  "capabilities": {"canSend": [], "canReceive": ["customName"]}
}`

const controllerRecord = `{
  "id": "remote-1",
  "type": "controller",
  "deviceType": "lightController",
  "isReachable": true,
  "attributes": {"customName": "Remote", "isOn": false, "batteryPercentage": 62},
  "capabilities": {"canSend": ["isOn", "lightLevel"], "canReceive": ["customName"]}
}`

const speakerRecord = `{
  "id": "speaker-1",
  "type": "speaker",
  "deviceType": "speaker",
  "isReachable": true,
  "attributes": {"customName": "Symfonisk", "playback": "playbackIdle", "volume": 20},
  "capabilities": {"canSend": [], "canReceive": ["customName", "volume"]}
}`

// withAttrs returns record with attributes overridden or removed (nil value).
func withAttrs(t *testing.T, record string, attrs map[string]any) string {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(record), &doc))
	a := doc["attributes"].(map[string]any)
	for k, v := range attrs {
		if v == nil {
			delete(a, k)
			continue
		}
		a[k] = v
	}
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(out)
}

// withField returns record with a top-level field overridden or removed.
func withField(t *testing.T, record, key string, value any) string {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(record), &doc))
	if value == nil {
		delete(doc, key)
	} else {
		doc[key] = value
	}
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(out)
}

func newLight(t *testing.T, tr *devicetest.Transport, record string) *device.Light {
	t.Helper()
	l, err := device.DecodeLight([]byte(record), tr)
	require.NoError(t, err)
	return l
}
