package config

import (
	"github.com/pelletier/go-toml/v2"
)

// tomlParser implements the koanf Parser interface with go-toml/v2.
type tomlParser struct{}

// Unmarshal parses a TOML document into a nested map.
func (tomlParser) Unmarshal(data []byte) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal encodes a nested map as TOML.
func (tomlParser) Marshal(m map[string]interface{}) ([]byte, error) {
	return toml.Marshal(m)
}
