package settings

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaJSON renders the JSON schema for the settings file, for editor
// integration and the -settings-schema flag.
func SchemaJSON() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(Settings{})
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings schema: %w", err)
	}
	return data, nil
}
