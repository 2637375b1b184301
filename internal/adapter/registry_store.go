package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "meowcode.dev/pkg/meowcode/internal/model"
)

// RegistryStore loads the mapping from type name to releasable fields.
type RegistryStore interface {
	Load(ctx context.Context, path m.Path) (m.Registry, error)
}

// YAMLRegistryStore reads a registry manifest. Types may be written as a
// sequence:
//
//	types:
//	  - name: Widget
//	    fields: [handle, buffer]
//
// or as a mapping, which keeps the order it is written in:
//
//	types:
//	  Widget: [handle, buffer]
type YAMLRegistryStore struct{}

// NewYAMLRegistryStore constructs a YAMLRegistryStore.
func NewYAMLRegistryStore() *YAMLRegistryStore {
	return &YAMLRegistryStore{}
}

// RegistryVersion is the newest manifest version this build reads. A
// manifest without a version is read as version 1.
const RegistryVersion = 1

// noKind is the node kind left behind when the types key is absent.
const noKind yaml.Kind = 0

type registryManifest struct {
	Version int       `yaml:"version"`
	Types   yaml.Node `yaml:"types"`
}

// Load reads and validates the manifest at path.
func (s *YAMLRegistryStore) Load(ctx context.Context, path m.Path) (m.Registry, error) {
	if err := ctx.Err(); err != nil {
		return m.Registry{}, err
	}

	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.Registry{}, fmt.Errorf("failed to read registry %s: %w", path, err)
	}

	registry, err := ParseRegistry(content)
	if err != nil {
		return m.Registry{}, fmt.Errorf("registry %s: %w", path, err)
	}

	return registry, nil
}

// ParseRegistry decodes a registry manifest.
func ParseRegistry(content []byte) (m.Registry, error) {
	var manifest registryManifest
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return m.Registry{}, fmt.Errorf("invalid yaml: %w", err)
	}

	if manifest.Version > RegistryVersion {
		return m.Registry{}, fmt.Errorf("unsupported registry version %d (newest is %d)", manifest.Version, RegistryVersion)
	}

	var entries []m.TypeEntry

	switch manifest.Types.Kind {
	case noKind:
		// No types key: an empty registry.
	case yaml.SequenceNode:
		if err := manifest.Types.Decode(&entries); err != nil {
			return m.Registry{}, fmt.Errorf("invalid types list: %w", err)
		}
	case yaml.MappingNode:
		decoded, err := decodeTypeMapping(&manifest.Types)
		if err != nil {
			return m.Registry{}, err
		}

		entries = decoded
	default:
		if manifest.Types.Tag == "!!null" {
			break
		}

		return m.Registry{}, fmt.Errorf("types must be a list or a mapping (line %d)", manifest.Types.Line)
	}

	if err := validateEntries(entries); err != nil {
		return m.Registry{}, err
	}

	return m.NewRegistry(entries...), nil
}

func decodeTypeMapping(node *yaml.Node) ([]m.TypeEntry, error) {
	entries := make([]m.TypeEntry, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var fields []string
		if err := value.Decode(&fields); err != nil {
			return nil, fmt.Errorf("invalid fields for %s (line %d): %w", key.Value, value.Line, err)
		}

		entries = append(entries, m.TypeEntry{Name: key.Value, Fields: fields})
	}

	return entries, nil
}

func validateEntries(entries []m.TypeEntry) error {
	for _, entry := range entries {
		if m.CleanTypeName(entry.Name) == "" {
			return errors.New("type entry without a name")
		}

		seen := make(map[string]struct{}, len(entry.Fields))

		for _, field := range entry.Fields {
			if field == "" {
				return fmt.Errorf("type %s: empty field name", entry.Name)
			}

			if _, ok := seen[field]; ok {
				return fmt.Errorf("type %s: duplicate field %s", entry.Name, field)
			}

			seen[field] = struct{}{}
		}
	}

	return nil
}
