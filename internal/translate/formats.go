// Package translate converts between the serialization formats the CLI can
// emit. JSON is the native format; YAML and TOML renderings go through a
// generic value so field order follows the JSON document.
package translate

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// JSONToYAML converts JSON data to YAML data.
func JSONToYAML(jsonData []byte) ([]byte, error) {
	var data any
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshaling yaml: %w", err)
	}
	return out, nil
}

// JSONToTOML converts JSON data to TOML data.
func JSONToTOML(jsonData []byte) ([]byte, error) {
	var data any
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}
	out, err := toml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshaling toml: %w", err)
	}
	return out, nil
}
