package tablefor

import (
	"fmt"
	"maps"
	"slices"
)

var (
	_ Model               = new(MapModel)
	_ HumanAttributeNamer = new(MapModel)
)

// MapModel is a Model for records of type map[string]any
// as produced by the sqltable, csvtable and exceltable packages.
//
// MapModel is immutable after creation, all With* methods
// return a new MapModel with the modified configuration.
type MapModel struct {
	name         string
	schema       Schema
	idField      string
	humanNames   map[string]string
	associations []Association
}

// NewMapModel returns a MapModel with the passed
// singular model name and schema using "id" as identity field.
func NewMapModel(name string, schema Schema) *MapModel {
	return &MapModel{name: name, schema: schema, idField: "id"}
}

func (m *MapModel) clone() *MapModel {
	c := new(MapModel)
	*c = *m
	return c
}

// WithIDField returns a new MapModel using field as identity.
func (m *MapModel) WithIDField(field string) *MapModel {
	mod := m.clone()
	mod.idField = field
	return mod
}

// WithHumanAttributeName returns a new MapModel
// with a human readable name for an attribute.
func (m *MapModel) WithHumanAttributeName(name, human string) *MapModel {
	mod := m.clone()
	mod.humanNames = maps.Clone(m.humanNames)
	if mod.humanNames == nil {
		mod.humanNames = make(map[string]string)
	}
	mod.humanNames[name] = human
	return mod
}

// WithAssociation returns a new MapModel with an additional association.
// The map value of the association name holds the associated record.
func (m *MapModel) WithAssociation(assoc Association) *MapModel {
	mod := m.clone()
	mod.associations = append(slices.Clip(m.associations), assoc)
	return mod
}

func (m *MapModel) Name() string   { return m.name }
func (m *MapModel) Schema() Schema { return m.schema }

func (m *MapModel) Associations(kind AssociationKind) []Association {
	var assocs []Association
	for _, assoc := range m.associations {
		if assoc.Kind == kind {
			assocs = append(assocs, assoc)
		}
	}
	return assocs
}

func (m *MapModel) HumanAttributeName(name string) (string, bool) {
	human, ok := m.humanNames[name]
	return human, ok
}

func (m *MapModel) Value(record any, name string) (any, error) {
	switch r := record.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return r[name], nil
	case map[string]string:
		return r[name], nil
	default:
		return nil, fmt.Errorf("record of type %T passed to map model %q", record, m.name)
	}
}

func (m *MapModel) ID(record any) (id any, ok bool) {
	if m.idField == "" {
		return nil, false
	}
	id, err := m.Value(record, m.idField)
	if err != nil || id == nil || id == "" {
		return nil, false
	}
	return id, true
}
