package schema

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sensorRecordSchema() json.RawMessage {
	return json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"required": ["id", "isReachable", "attributes"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"isReachable": {"type": "boolean"},
			"attributes": {
				"type": "object",
				"required": ["customName", "isOpen"],
				"properties": {
					"customName": {"type": "string"},
					"isOpen": {"type": "boolean"},
					"batteryPercentage": {"type": "integer", "minimum": 0, "maximum": 100}
				}
			}
		}
	}`)
}

func TestValidate_ValidPayload(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sensorRecordSchema(), map[string]any{
		"id":          "door-1",
		"isReachable": true,
		"attributes": map[string]any{
			"customName":        "Front door",
			"isOpen":            false,
			"batteryPercentage": float64(80),
		},
	})
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sensorRecordSchema(), map[string]any{
		"id":          "door-1",
		"isReachable": true,
		"attributes":  map[string]any{"customName": "Front door"},
	})
	assert.Error(t, err)
}

func TestValidate_WrongType(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sensorRecordSchema(), map[string]any{
		"id":          "door-1",
		"isReachable": "yes",
		"attributes":  map[string]any{"customName": "Front door", "isOpen": true},
	})
	assert.Error(t, err)
}

func TestValidateJSON_IntegerCheck(t *testing.T) {
	v := NewValidator()
	base := `{"id": "door-1", "isReachable": true, "attributes": {"customName": "Front door", "isOpen": true, "batteryPercentage": %s}}`

	assert.NoError(t, v.ValidateJSON(sensorRecordSchema(), []byte(fmt.Sprintf(base, "88"))))
	assert.Error(t, v.ValidateJSON(sensorRecordSchema(), []byte(fmt.Sprintf(base, "88.5"))))
	assert.Error(t, v.ValidateJSON(sensorRecordSchema(), []byte(fmt.Sprintf(base, "101"))))
}

func TestValidateJSON_NotJSON(t *testing.T) {
	v := NewValidator()

	assert.Error(t, v.ValidateJSON(sensorRecordSchema(), []byte(`{"id":`)))
}

func TestValidate_EmptySchema(t *testing.T) {
	v := NewValidator()

	for _, doc := range []string{"", "{}", "null"} {
		assert.NoError(t, v.Validate(json.RawMessage(doc), map[string]any{"anything": "goes"}), doc)
	}
}

func TestValidate_InvalidSchema(t *testing.T) {
	v := NewValidator()

	err := v.Validate(json.RawMessage(`{"type": 42}`), map[string]any{})
	assert.ErrorContains(t, err, "failed to compile schema")
}

func TestValidate_CachesCompiledSchema(t *testing.T) {
	v := NewValidator()
	schema := sensorRecordSchema()
	payload := map[string]any{
		"id":          "door-1",
		"isReachable": true,
		"attributes":  map[string]any{"customName": "Front door", "isOpen": true},
	}

	require.NoError(t, v.Validate(schema, payload))
	require.NoError(t, v.Validate(schema, payload))

	count := 0
	v.compiled.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)
}

func TestValidate_ErrorHasNoFilePath(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sensorRecordSchema(), map[string]any{"id": "door-1"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "file://")
	assert.Contains(t, err.Error(), resourceName)
}
