// Package schema checks decoded JSON against JSON Schema documents. Hub
// records and command bodies are validated here before they are decoded
// into Go types.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// resourceName is absolute so compiled locations do not depend on the
// working directory.
const resourceName = "mem://dirigera/schema.json"

// Validator compiles each distinct schema document once and reuses it.
// It is safe for concurrent use.
type Validator struct {
	compiled sync.Map // string(schema) -> *jsonschema.Schema
}

// NewValidator creates a Validator with nothing compiled yet.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks doc, a decoded JSON value, against schemaDoc. An empty,
// "{}" or "null" schema accepts anything.
func (v *Validator) Validate(schemaDoc json.RawMessage, doc any) error {
	if blank(schemaDoc) {
		return nil
	}
	s, err := v.schema(schemaDoc)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	return s.Validate(doc)
}

// ValidateJSON decodes raw and validates it against schemaDoc. Numbers are
// kept as json.Number so integer checks are exact.
func (v *Validator) ValidateJSON(schemaDoc json.RawMessage, raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return v.Validate(schemaDoc, doc)
}

func (v *Validator) schema(schemaDoc json.RawMessage) (*jsonschema.Schema, error) {
	key := string(schemaDoc)
	if s, ok := v.compiled.Load(key); ok {
		return s.(*jsonschema.Schema), nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaDoc))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	if err := c.AddResource(resourceName, doc); err != nil {
		return nil, err
	}
	s, err := c.Compile(resourceName)
	if err != nil {
		return nil, err
	}

	// Concurrent first uses may both compile; either result is equivalent.
	actual, _ := v.compiled.LoadOrStore(key, s)
	return actual.(*jsonschema.Schema), nil
}

func blank(schemaDoc json.RawMessage) bool {
	switch string(bytes.TrimSpace(schemaDoc)) {
	case "", "{}", "null":
		return true
	}
	return false
}
