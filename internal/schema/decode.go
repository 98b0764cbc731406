package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultGenerate is the artifact list assumed when a module omits one.
var DefaultGenerate = []string{"controller", "service", "module", "entity", "dto"}

// moduleEntity is the nested layout some generators emit, with fields and
// relations grouped under an entity key.
type moduleEntity struct {
	Fields    []Field     `yaml:"fields"`
	Relations []*Relation `yaml:"relations"`
}

// UnmarshalYAML accepts both wire layouts for a module: fields/relations at
// the top level, or nested under entity. When both are present the entity
// block wins.
func (m *Module) UnmarshalYAML(node *yaml.Node) error {
	var aux struct {
		Name          string        `yaml:"name"`
		Generate      []string      `yaml:"generate"`
		AuthProtected bool          `yaml:"authProtected"`
		Fields        []Field       `yaml:"fields"`
		Relations     []*Relation   `yaml:"relations"`
		Entity        *moduleEntity `yaml:"entity"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}

	m.Name = aux.Name
	m.Generate = aux.Generate
	m.AuthProtected = aux.AuthProtected
	m.Fields = aux.Fields
	m.Relations = aux.Relations
	if aux.Entity != nil {
		if len(aux.Entity.Fields) > 0 {
			m.Fields = aux.Entity.Fields
		}
		if len(aux.Entity.Relations) > 0 {
			m.Relations = aux.Entity.Relations
		}
	}
	return nil
}

// Decode parses sanitized YAML text into a Blueprint and checks its basic
// structure. Relation targets are not validated here; that is the resolver's
// job.
func Decode(text string) (*Blueprint, error) {
	var bp Blueprint
	if err := yaml.Unmarshal([]byte(text), &bp); err != nil {
		return nil, fmt.Errorf("decoding blueprint: %w", err)
	}
	if err := bp.validate(); err != nil {
		return nil, err
	}
	for _, m := range bp.Modules {
		if len(m.Generate) == 0 {
			m.Generate = append([]string(nil), DefaultGenerate...)
		}
	}
	return &bp, nil
}

func (b *Blueprint) validate() error {
	if len(b.Modules) == 0 {
		return fmt.Errorf("blueprint declares no modules")
	}
	for i, m := range b.Modules {
		if m == nil || m.Name == "" {
			return fmt.Errorf("module at index %d has no name", i)
		}
		for _, f := range m.Fields {
			if f.Name == "" {
				return fmt.Errorf("module %s declares a field with no name", m.Name)
			}
		}
		for _, r := range m.Relations {
			if r.TargetModule == "" {
				return fmt.Errorf("module %s declares a relation with no target", m.Name)
			}
			// Inferred relations may carry an empty field when the derived
			// inverse name collided on the target side.
			if r.Field == "" && !r.Inferred {
				return fmt.Errorf("module %s declares a relation to %s with no field", m.Name, r.TargetModule)
			}
		}
	}
	return nil
}

// Encode serializes a blueprint back to canonical YAML with fields and
// relations flattened onto each module.
func Encode(bp *Blueprint) ([]byte, error) {
	out, err := yaml.Marshal(bp)
	if err != nil {
		return nil, fmt.Errorf("encoding blueprint: %w", err)
	}
	return out, nil
}
