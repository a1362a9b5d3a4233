package llm

import "github.com/invopop/jsonschema"

// GenerateSchema builds a JSON schema for OpenAI structured outputs.
// Structured Outputs uses a subset of JSON schema; these flags are necessary
// to comply with the subset.
func GenerateSchema[T any]() interface{} {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
