// Package forms publishes JSON Schemas for the console's modal
// payloads, so clients can validate before submitting.
package forms

import (
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/axiomconsultancy/axiom-admin-go/console"
)

func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

var schemas = map[string]any{
	"agent":  GenerateSchema[console.AgentForm](),
	"user":   GenerateSchema[console.UserForm](),
	"plan":   GenerateSchema[console.PlanForm](),
	"coupon": GenerateSchema[console.CouponForm](),
}

// Schema returns the schema for a form name.
func Schema(name string) (any, bool) {
	schema, ok := schemas[name]
	return schema, ok
}

// Names lists the published form names, sorted.
func Names() []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
