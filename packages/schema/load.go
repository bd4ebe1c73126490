package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a schema node tree from a JSON or YAML file. Scaffolded
// projects keep expected-response schemas as fixtures next to their tests.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	node := &Node{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, node); err != nil {
			return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, node); err != nil {
			return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported schema file extension: %s", path)
	}
	return node, nil
}
