// Package schema defines the blueprint data model and the relation graph
// resolver that validates cross-module references.
package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RelationKind identifies the cardinality of a directed relation.
type RelationKind int

const (
	OneToOne RelationKind = iota
	OneToMany
	ManyToOne
	ManyToMany
)

// String returns the canonical wire spelling of the kind.
func (k RelationKind) String() string {
	switch k {
	case OneToOne:
		return "OneToOne"
	case OneToMany:
		return "OneToMany"
	case ManyToOne:
		return "ManyToOne"
	case ManyToMany:
		return "ManyToMany"
	default:
		return "unknown"
	}
}

// Inverse returns the kind a relation in the opposite direction must carry.
func (k RelationKind) Inverse() RelationKind {
	switch k {
	case OneToMany:
		return ManyToOne
	case ManyToOne:
		return OneToMany
	default:
		// OneToOne and ManyToMany are symmetric
		return k
	}
}

// ParseRelationKind converts a wire string into a RelationKind.
func ParseRelationKind(s string) (RelationKind, error) {
	switch s {
	case "OneToOne":
		return OneToOne, nil
	case "OneToMany":
		return OneToMany, nil
	case "ManyToOne":
		return ManyToOne, nil
	case "ManyToMany":
		return ManyToMany, nil
	default:
		return 0, fmt.Errorf("invalid relation kind %q", s)
	}
}

// MarshalYAML implements yaml.Marshaler for RelationKind.
func (k RelationKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for RelationKind.
func (k *RelationKind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	kind, err := ParseRelationKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Field describes one persisted attribute of a module.
type Field struct {
	Name       string                 `yaml:"name"`
	Type       string                 `yaml:"type"`
	Required   bool                   `yaml:"required,omitempty"`
	Validation map[string]interface{} `yaml:"validation,omitempty"`
}

// Relation is a typed, directed association from its owning module to
// TargetModule. InverseField names the property on the target side; it is
// empty until authored or inferred by the resolver. Inferred distinguishes
// resolver-synthesized relations from authored ones so renderers can tell
// explicit metadata from derived metadata.
type Relation struct {
	Kind         RelationKind `yaml:"type"`
	TargetModule string       `yaml:"model"`
	Field        string       `yaml:"field"`
	InverseField string       `yaml:"inverseField,omitempty"`
	Description  string       `yaml:"description,omitempty"`
	OnDelete     string       `yaml:"onDelete,omitempty"`
	Inferred     bool         `yaml:"inferred,omitempty"`
}

// Module is one schema entity: a unique name plus ordered fields and
// outgoing relations.
type Module struct {
	Name          string      `yaml:"name"`
	Generate      []string    `yaml:"generate,omitempty"`
	AuthProtected bool        `yaml:"authProtected,omitempty"`
	Fields        []Field     `yaml:"fields,omitempty"`
	Relations     []*Relation `yaml:"relations,omitempty"`
}

// DatabaseConfig is the persistence section of the blueprint root.
type DatabaseConfig struct {
	Type        string `yaml:"type,omitempty"`
	Database    string `yaml:"database,omitempty"`
	Synchronize bool   `yaml:"synchronize,omitempty"`
	Logging     bool   `yaml:"logging,omitempty"`
}

// RootConfig is the application-level section of the blueprint.
type RootConfig struct {
	Name     string          `yaml:"name"`
	Database *DatabaseConfig `yaml:"database,omitempty"`
	Features map[string]bool `yaml:"features,omitempty"`
}

// Blueprint is the validated schema handed to the renderer. Once a
// compilation returns it, nothing in this package mutates it again.
type Blueprint struct {
	Root    RootConfig `yaml:"root"`
	Modules []*Module  `yaml:"modules"`
}

// ModuleNames returns the declared module names in declaration order.
func (b *Blueprint) ModuleNames() []string {
	names := make([]string, 0, len(b.Modules))
	for _, m := range b.Modules {
		names = append(names, m.Name)
	}
	return names
}

// Module returns the module with the given name, or nil.
func (b *Blueprint) Module(name string) *Module {
	for _, m := range b.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}
