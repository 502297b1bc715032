package rtconfig

import (
	"os"

	"github.com/joeycumines/go-fibernet/runtimelog"
	"gopkg.in/yaml.v3"
)

// flatten walks a decoded YAML document the way the original's
// ListAllMember does: every node (map or scalar) is recorded under its
// dotted prefix, and mapping nodes are additionally recursed into so
// their children get their own dotted entries.
func flatten(prefix string, node *yaml.Node, out map[string]*yaml.Node) {
	switch node.Kind {
	case yaml.DocumentNode:
		for _, c := range node.Content {
			flatten(prefix, c, out)
		}
	case yaml.MappingNode:
		if prefix != "" {
			out[prefix] = node
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			child := node.Content[i+1]
			childPrefix := key
			if prefix != "" {
				childPrefix = prefix + "." + key
			}
			flatten(childPrefix, child, out)
		}
	default:
		out[prefix] = node
	}
}

// LoadYAML parses data as a YAML document and applies every leaf whose
// dotted, lower-cased path matches a registered Var, notifying that
// Var's listeners for any value actually changed. Unregistered keys are
// ignored, matching Config::LoadFromYaml's "var ? apply : skip" logic.
func LoadYAML(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}

	flat := make(map[string]*yaml.Node)
	flatten("", &doc, flat)

	registryMu.RLock()
	defer registryMu.RUnlock()

	for key, node := range flat {
		if key == "" {
			continue
		}
		lower := normalizeName(key)
		if hasInvalidChars(lower) {
			runtimelog.Default().Warning("rtconfig: invalid name", "name", lower)
		}
		v, ok := registry[lower]
		if !ok {
			continue
		}
		if err := v.loadYAML(node); err != nil {
			runtimelog.Default().Error("rtconfig: failed to apply value", "name", lower, "err", err)
		}
	}

	return nil
}

// LoadYAMLFile reads path and applies it via LoadYAML.
func LoadYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return LoadYAML(data)
}
