package mandate

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	intentSchema = mustCompile("schemas/intent_mandate.schema.json")
	cartSchema   = mustCompile("schemas/cart_mandate.schema.json")
)

func mustCompile(path string) *jsonschema.Schema {
	raw, err := schemaFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("mandate: embedded schema %s missing: %v", path, err))
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	url := "https://fundingchain.schemas.local/" + path
	if err := c.AddResource(url, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("mandate: schema %s load failed: %v", path, err))
	}
	compiled, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("mandate: schema %s compile failed: %v", path, err))
	}
	return compiled
}

// ParseIntent validates raw state bytes against the IntentMandate schema
// and decodes them. A record that is present but malformed yields a
// StructuralError; it is refused, never defaulted.
func ParseIntent(raw json.RawMessage) (*IntentMandate, error) {
	if err := validateAgainst(StageIntent, intentSchema, raw); err != nil {
		return nil, err
	}
	var m IntentMandate
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &StructuralError{Stage: StageIntent, Err: err}
	}
	return &m, nil
}

// ParseCart validates raw state bytes against the CartMandate schema and
// decodes them.
func ParseCart(raw json.RawMessage) (*CartMandate, error) {
	if err := validateAgainst(StageCart, cartSchema, raw); err != nil {
		return nil, err
	}
	var m CartMandate
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, &StructuralError{Stage: StageCart, Err: err}
	}
	return &m, nil
}

func validateAgainst(stage Stage, schema *jsonschema.Schema, raw json.RawMessage) error {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return &StructuralError{Stage: stage, Err: err}
	}
	if err := schema.Validate(generic); err != nil {
		return &StructuralError{Stage: stage, Err: err}
	}
	return nil
}
