package tablefor

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
)

var (
	_ Model               = new(StructModel)
	_ HumanAttributeNamer = new(StructModel)
)

// ModelNamer can be implemented by struct record types
// to override the model name derived from the type name.
type ModelNamer interface {
	ModelName() string
}

// StructModel is a Model for struct records using reflection.
// All exported struct fields including the inlined fields
// of anonymously embedded structs are schema columns,
// fields tagged as associations are reported by Associations.
type StructModel struct {
	name       string
	structType reflect.Type
	naming     *StructFieldNaming
	fields     []structField
}

type structField struct {
	name    string
	heading string
	index   []int
	typ     reflect.Type
	assoc   AssociationKind
}

// StructModelFor returns a StructModel for the struct type T
// using DefaultStructFieldNaming.
func StructModelFor[T any]() (*StructModel, error) {
	return StructModelOf(reflect.TypeFor[T]())
}

// StructModelOf returns a StructModel for a struct or struct pointer type
// using DefaultStructFieldNaming.
func StructModelOf(structType reflect.Type) (*StructModel, error) {
	return DefaultStructFieldNaming.StructModelOf(structType)
}

// StructModelOf returns a StructModel for a struct or struct pointer type
// using the field naming n.
func (n *StructFieldNaming) StructModelOf(structType reflect.Type) (*StructModel, error) {
	if structType == nil {
		return nil, errors.New("record type must be a struct but is <nil>")
	}
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record type must be a struct but is %s", structType)
	}
	m := &StructModel{
		name:       SnakeCase(structType.Name()),
		structType: structType,
		naming:     n,
	}
	if namer, ok := reflect.New(structType).Interface().(ModelNamer); ok {
		m.name = namer.ModelName()
	}
	err := m.addFields(structType, nil)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *StructModel) addFields(structType reflect.Type, parentIndex []int) error {
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		index := append(append([]int(nil), parentIndex...), i)
		switch {
		case m.naming.IsIgnored(field):
			continue
		case field.Anonymous:
			t := field.Type
			if t.Kind() == reflect.Ptr {
				t = t.Elem()
			}
			if t.Kind() == reflect.Struct {
				err := m.addFields(t, index)
				if err != nil {
					return err
				}
			}
		case token.IsExported(field.Name):
			assoc, err := m.naming.FieldAssociation(field)
			if err != nil {
				return err
			}
			heading, _ := m.naming.FieldHeading(field)
			m.fields = append(m.fields, structField{
				name:    m.naming.FieldName(field),
				heading: heading,
				index:   index,
				typ:     field.Type,
				assoc:   assoc,
			})
		}
	}
	return nil
}

// StructType returns the struct type described by the model.
func (m *StructModel) StructType() reflect.Type { return m.structType }

func (m *StructModel) Name() string { return m.name }

// Schema returns the attribute fields in declaration order as schema columns.
func (m *StructModel) Schema() Schema {
	columns := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		if f.assoc == 0 {
			columns = append(columns, f.name)
		}
	}
	return Schema{Columns: columns}
}

func (m *StructModel) Associations(kind AssociationKind) []Association {
	var assocs []Association
	for _, f := range m.fields {
		if f.assoc != kind {
			continue
		}
		assoc := Association{Kind: kind, Name: f.name}
		if model, err := m.naming.StructModelOf(f.typ); err == nil {
			assoc.TypeName = model.Name()
			assoc.Model = model
		}
		assocs = append(assocs, assoc)
	}
	return assocs
}

func (m *StructModel) HumanAttributeName(name string) (string, bool) {
	f := m.field(name)
	if f == nil || f.heading == "" {
		return "", false
	}
	return f.heading, true
}

// Value returns the value of the struct field with the attribute name.
// If there is no such field, then a method with the PascalCase
// version of name without arguments and with one result
// or a result and an error is called.
// A nil record or a nil embedded struct pointer result in a nil value.
func (m *StructModel) Value(record any, name string) (any, error) {
	v, err := m.structValue(record)
	if err != nil || !v.IsValid() {
		return nil, err
	}
	if f := m.field(name); f != nil {
		fv, err := v.FieldByIndexErr(f.index)
		if err != nil {
			// nil pointer to embedded struct
			return nil, nil
		}
		if !fv.CanInterface() {
			return nil, fmt.Errorf("%s field %q is not accessible", m.structType, name)
		}
		return fv.Interface(), nil
	}
	return m.callMethod(record, name)
}

func (m *StructModel) ID(record any) (id any, ok bool) {
	if m.field("id") == nil {
		return nil, false
	}
	id, err := m.Value(record, "id")
	if err != nil || ValueIsNil(reflect.ValueOf(id)) {
		return nil, false
	}
	return id, true
}

func (m *StructModel) field(name string) *structField {
	for i := range m.fields {
		if m.fields[i].name == name {
			return &m.fields[i]
		}
	}
	return nil
}

func (m *StructModel) structValue(record any) (reflect.Value, error) {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, nil
	}
	if v.Type() != m.structType {
		return reflect.Value{}, fmt.Errorf("record of type %s passed to model of %s", v.Type(), m.structType)
	}
	return v, nil
}

func (m *StructModel) callMethod(record any, name string) (any, error) {
	v := reflect.ValueOf(record)
	if v.Kind() != reflect.Ptr {
		// Make methods with pointer receivers callable
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		v = ptr
	}
	method := v.MethodByName(PascalCase(name))
	if !method.IsValid() || method.Type().NumIn() != 0 {
		return nil, fmt.Errorf("%s has no attribute %q", m.structType, name)
	}
	switch t := method.Type(); {
	case t.NumOut() == 1:
		return method.Call(nil)[0].Interface(), nil
	case t.NumOut() == 2 && t.Out(1) == typeOfError:
		results := method.Call(nil)
		if err, _ := results[1].Interface().(error); err != nil {
			return nil, err
		}
		return results[0].Interface(), nil
	}
	return nil, fmt.Errorf("%s method %s has unsupported signature %s", m.structType, PascalCase(name), method.Type())
}

var typeOfError = reflect.TypeOf((*error)(nil)).Elem()

// ValueIsNil return true if passed reflect.Value
// is not valid, nil (of a type that can be nil),
// or is of type struct{}
func ValueIsNil(val reflect.Value) bool {
	if !val.IsValid() {
		return true
	}
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return val.IsNil()
	case reflect.Struct:
		if t := val.Type(); t.NumField() == 0 && t.NumMethod() == 0 {
			// Treat a value of type struct{} like nil
			return true
		}
	}
	return false
}
