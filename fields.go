package tablefor

import "fmt"

type FieldKind int

const (
	Attribute FieldKind = iota
	BelongsToAssociation
	HasOneAssociation
)

func (k FieldKind) String() string {
	switch k {
	case Attribute:
		return "Attribute"
	case BelongsToAssociation:
		return "BelongsToAssociation"
	case HasOneAssociation:
		return "HasOneAssociation"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// FieldDescriptor is a displayable field of a record type.
type FieldDescriptor struct {
	Name string
	Kind FieldKind
	// AssociatedTypeName is the model name of the
	// associated record type for association kinds.
	AssociatedTypeName string
}

// ResolveFields returns the displayable fields of a model
// in display order:
// the schema columns minus the excluded fields of the config,
// or if there are no schema columns the field map in provider order,
// followed by the belongs-to and finally the has-one associations.
//
// ErrSchemaUnavailable is returned if the model
// has neither schema columns nor a field map.
func ResolveFields(model Model, config *Config) ([]FieldDescriptor, error) {
	config = config.orDefault()
	if model == nil {
		return nil, fmt.Errorf("%w: no model", ErrSchemaUnavailable)
	}

	var fields []FieldDescriptor
	schema := model.Schema()
	switch schema.Kind() {
	case SchemaColumns:
		for _, name := range schema.Columns {
			if !config.excluded(name) {
				fields = append(fields, FieldDescriptor{Name: name, Kind: Attribute})
			}
		}
	case FieldMap:
		for _, name := range schema.Fields {
			fields = append(fields, FieldDescriptor{Name: name, Kind: Attribute})
		}
	default:
		return nil, fmt.Errorf("%w: model %q", ErrSchemaUnavailable, model.Name())
	}

	for _, assoc := range model.Associations(BelongsTo) {
		fields = append(fields, FieldDescriptor{Name: assoc.Name, Kind: BelongsToAssociation, AssociatedTypeName: assoc.TypeName})
	}
	for _, assoc := range model.Associations(HasOne) {
		fields = append(fields, FieldDescriptor{Name: assoc.Name, Kind: HasOneAssociation, AssociatedTypeName: assoc.TypeName})
	}
	return fields, nil
}

// humanAttributeName returns the heading for a field of model.
func humanAttributeName(model Model, name string) string {
	if namer, ok := model.(HumanAttributeNamer); ok {
		if human, ok := namer.HumanAttributeName(name); ok {
			return human
		}
	}
	return Humanize(name)
}

func findAssociation(model Model, name string) (Association, bool) {
	if model == nil {
		return Association{}, false
	}
	for _, kind := range []AssociationKind{BelongsTo, HasOne} {
		for _, assoc := range model.Associations(kind) {
			if assoc.Name == name {
				return assoc, true
			}
		}
	}
	return Association{}, false
}
