package device

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/urmzd/dirigera/pkg/device/schema"
	"github.com/urmzd/dirigera/pkg/wire"
)

// recordSchema lists the wire fields every device record must carry.
// Attribute fields beyond customName are added per kind. Optional top-level
// fields may be null.
const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "type", "deviceType", "isReachable", "attributes"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "relationId": {"type": ["string", "null"]},
    "type": {"type": "string"},
    "deviceType": {"type": "string"},
    "isReachable": {"type": "boolean"},
    "attributes": {
      "type": "object",
      "required": ["customName"],
      "properties": {
        "customName": {"type": "string"}
      }
    },
    "capabilities": {
      "type": ["object", "null"],
      "properties": {
        "canSend": {"type": "array", "items": {"type": "string"}},
        "canReceive": {"type": "array", "items": {"type": "string"}}
      }
    },
    "room": {
      "type": ["object", "null"],
      "required": ["id"],
      "properties": {"id": {"type": "string"}}
    },
    "deviceSet": {"type": ["array", "null"]},
    "remoteLinks": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`

// requiredAttributes holds the boolean attributes a kind cannot be decoded
// without.
var requiredAttributes = map[Kind][]string{
	KindLight:           {"isOn"},
	KindOutlet:          {"isOn"},
	KindOpenCloseSensor: {"isOpen"},
	KindWaterSensor:     {"waterLeakDetected"},
}

var (
	validator     = schema.NewValidator()
	recordSchemas = buildRecordSchemas()
)

func buildRecordSchemas() map[Kind]json.RawMessage {
	kinds := []Kind{
		KindLight, KindBlind, KindOutlet, KindController, KindEnvironmentSensor,
		KindMotionSensor, KindOpenCloseSensor, KindWaterSensor, KindAirPurifier, KindUnknown,
	}
	out := make(map[Kind]json.RawMessage, len(kinds))
	for _, k := range kinds {
		var doc map[string]any
		if err := json.Unmarshal([]byte(recordSchema), &doc); err != nil {
			panic(fmt.Sprintf("device: record schema: %v", err))
		}
		attrs := doc["properties"].(map[string]any)["attributes"].(map[string]any)
		props := attrs["properties"].(map[string]any)
		for _, name := range requiredAttributes[k] {
			attrs["required"] = append(attrs["required"].([]any), name)
			props[name] = map[string]any{"type": "boolean"}
		}
		b, err := json.Marshal(doc)
		if err != nil {
			panic(fmt.Sprintf("device: record schema: %v", err))
		}
		out[k] = b
	}
	return out
}

// header is the part of a record needed to pick a variant.
type header struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	DeviceType string `json:"deviceType"`
}

func readHeader(raw []byte) (header, error) {
	var h header
	if err := json.Unmarshal(raw, &h); err != nil {
		return h, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return h, nil
}

// entity is the pointer side of a variant: a Device that can be bound to a
// transport after decoding.
type entity[T any] interface {
	*T
	Device
	bind(Transport)
}

// Decode turns one raw hub record into its variant. Records of unrecognised
// kinds decode to *Unknown. The returned device performs its writes and
// reloads through t.
func Decode(raw []byte, t Transport) (Device, error) {
	h, err := readHeader(raw)
	if err != nil {
		return nil, err
	}
	switch KindOf(h.Type, h.DeviceType) {
	case KindLight:
		return asDevice(decodeAs[Light](raw, KindLight, t))
	case KindBlind:
		return asDevice(decodeAs[Blind](raw, KindBlind, t))
	case KindOutlet:
		return asDevice(decodeAs[Outlet](raw, KindOutlet, t))
	case KindController:
		return asDevice(decodeAs[Controller](raw, KindController, t))
	case KindEnvironmentSensor:
		return asDevice(decodeAs[EnvironmentSensor](raw, KindEnvironmentSensor, t))
	case KindMotionSensor:
		return asDevice(decodeAs[MotionSensor](raw, KindMotionSensor, t))
	case KindOpenCloseSensor:
		return asDevice(decodeAs[OpenCloseSensor](raw, KindOpenCloseSensor, t))
	case KindWaterSensor:
		return asDevice(decodeAs[WaterSensor](raw, KindWaterSensor, t))
	case KindAirPurifier:
		return asDevice(decodeAs[AirPurifier](raw, KindAirPurifier, t))
	default:
		return asDevice(decodeUnknown(raw, t))
	}
}

// asDevice keeps a failed decode from surfacing as a non-nil interface
// holding a nil pointer.
func asDevice[P Device](p P, err error) (Device, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeLight decodes raw and fails with ErrTypeMismatch unless it is a light.
func DecodeLight(raw []byte, t Transport) (*Light, error) {
	return decodeKind[Light](raw, KindLight, t)
}

// DecodeBlind decodes raw and fails with ErrTypeMismatch unless it is a blind.
func DecodeBlind(raw []byte, t Transport) (*Blind, error) {
	return decodeKind[Blind](raw, KindBlind, t)
}

// DecodeOutlet decodes raw and fails with ErrTypeMismatch unless it is an outlet.
func DecodeOutlet(raw []byte, t Transport) (*Outlet, error) {
	return decodeKind[Outlet](raw, KindOutlet, t)
}

// DecodeController decodes raw and fails with ErrTypeMismatch unless it is a
// controller.
func DecodeController(raw []byte, t Transport) (*Controller, error) {
	return decodeKind[Controller](raw, KindController, t)
}

// DecodeEnvironmentSensor decodes raw and fails with ErrTypeMismatch unless it
// is an environment sensor.
func DecodeEnvironmentSensor(raw []byte, t Transport) (*EnvironmentSensor, error) {
	return decodeKind[EnvironmentSensor](raw, KindEnvironmentSensor, t)
}

// DecodeMotionSensor decodes raw and fails with ErrTypeMismatch unless it is a
// motion sensor.
func DecodeMotionSensor(raw []byte, t Transport) (*MotionSensor, error) {
	return decodeKind[MotionSensor](raw, KindMotionSensor, t)
}

// DecodeOpenCloseSensor decodes raw and fails with ErrTypeMismatch unless it
// is an open/close sensor.
func DecodeOpenCloseSensor(raw []byte, t Transport) (*OpenCloseSensor, error) {
	return decodeKind[OpenCloseSensor](raw, KindOpenCloseSensor, t)
}

// DecodeWaterSensor decodes raw and fails with ErrTypeMismatch unless it is a
// water sensor.
func DecodeWaterSensor(raw []byte, t Transport) (*WaterSensor, error) {
	return decodeKind[WaterSensor](raw, KindWaterSensor, t)
}

// DecodeAirPurifier decodes raw and fails with ErrTypeMismatch unless it is an
// air purifier.
func DecodeAirPurifier(raw []byte, t Transport) (*AirPurifier, error) {
	return decodeKind[AirPurifier](raw, KindAirPurifier, t)
}

func decodeKind[T any, P entity[T]](raw []byte, want Kind, t Transport) (P, error) {
	h, err := readHeader(raw)
	if err != nil {
		return nil, err
	}
	if got := KindOf(h.Type, h.DeviceType); got != want {
		return nil, fmt.Errorf("%w: %s is a %s, not a %s", ErrTypeMismatch, h.ID, got, want)
	}
	return decodeAs[T, P](raw, want, t)
}

func decodeAs[T any, P entity[T]](raw []byte, kind Kind, t Transport) (P, error) {
	local, err := toLocal(raw, kind)
	if err != nil {
		return nil, err
	}
	var v T
	p := P(&v)
	if err := json.Unmarshal(local, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	p.bind(t)
	return p, nil
}

// toLocal validates a wire record for kind and rewrites its keys to
// snake_case.
func toLocal(raw []byte, kind Kind) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if err := validator.Validate(recordSchemas[kind], doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return json.Marshal(wire.SnakeKeys(doc))
}

func decodeUnknown(raw []byte, t Transport) (*Unknown, error) {
	u, err := decodeAs[Unknown](raw, KindUnknown, t)
	if err != nil {
		return nil, err
	}
	local, err := toLocal(raw, KindUnknown)
	if err != nil {
		return nil, err
	}
	var rest struct {
		Attributes map[string]any `json:"attributes"`
	}
	if err := json.Unmarshal(local, &rest); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	u.Raw = rest.Attributes
	return u, nil
}
