package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Verify checks the config against the schema reflected from Config. Every property marked
// required in the struct tags must hold a non-empty value, nested objects and arrays included.
func Verify(cfg *Config) error {
	schema, err := GenerateSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := checkRequired(schema, configMap, ""); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// checkRequired walks schema and data together
func checkRequired(schema *jsonschema.Schema, data map[string]any, path string) error {
	for _, name := range schema.Required {
		if isEmptyValue(data[name]) {
			return fmt.Errorf("%s is required", path+name)
		}
	}
	if schema.Properties == nil {
		return nil
	}

	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		name, prop := pair.Key, pair.Value
		switch v := data[name].(type) {
		case map[string]any:
			if err := checkRequired(prop, v, path+name+"."); err != nil {
				return err
			}
		case []any:
			if prop.Items == nil {
				continue
			}
			for i, elem := range v {
				m, ok := elem.(map[string]any)
				if !ok {
					continue
				}
				if err := checkRequired(prop.Items, m, fmt.Sprintf("%s%s[%d].", path, name, i)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

// GenerateSchema generates a JSON schema for the Config struct with all definitions inlined
func GenerateSchema() (*jsonschema.Schema, error) {
	r := jsonschema.Reflector{DoNotReference: true, RequiredFromJSONSchemaTags: true}
	return r.Reflect(&Config{}), nil
}
