package tablefor

import (
	"fmt"
	"reflect"
)

// SchemaKind classifies which introspection capability
// a Schema represents.
type SchemaKind int

const (
	// NoMetadata means neither schema columns nor a field map are available.
	NoMetadata SchemaKind = iota
	// SchemaColumns means the model has a declared ordered list of attribute columns.
	SchemaColumns
	// FieldMap means the model has a generic set of field names.
	FieldMap
)

func (k SchemaKind) String() string {
	switch k {
	case NoMetadata:
		return "NoMetadata"
	case SchemaColumns:
		return "SchemaColumns"
	case FieldMap:
		return "FieldMap"
	}
	return fmt.Sprintf("SchemaKind(%d)", int(k))
}

// Schema is the introspected attribute metadata of a record type.
//
// Columns is nil if the provider has no schema capability,
// Fields is nil if the provider has no field map capability.
// Fields must be returned in a deterministic order,
// the table builder does not sort them.
type Schema struct {
	Columns []string
	Fields  []string
}

// Kind returns which capability of the schema is used
// to resolve the displayable fields.
// Non empty Columns take precedence over Fields.
func (s Schema) Kind() SchemaKind {
	switch {
	case len(s.Columns) > 0:
		return SchemaColumns
	case s.Fields != nil:
		return FieldMap
	case s.Columns != nil:
		return SchemaColumns
	}
	return NoMetadata
}

type AssociationKind int

const (
	BelongsTo AssociationKind = iota + 1
	HasOne
)

func (k AssociationKind) String() string {
	switch k {
	case BelongsTo:
		return "belongs_to"
	case HasOne:
		return "has_one"
	}
	return fmt.Sprintf("AssociationKind(%d)", int(k))
}

// Association describes a belongs-to or has-one relation
// of a record type.
type Association struct {
	Kind AssociationKind
	// Name is the accessor name of the associated record, e.g. "author".
	Name string
	// TypeName is the model name of the associated record type.
	TypeName string
	// Model of the associated records, may be nil.
	Model Model
}

// Model is the metadata provider for one record type.
type Model interface {
	// Name returns the singular underscore name
	// of the record type, for example "post".
	Name() string

	// Schema returns the attribute metadata of the record type.
	Schema() Schema

	// Associations returns the associations of the passed kind in declaration order.
	Associations(kind AssociationKind) []Association

	// Value returns the value of the named attribute
	// or association of the record.
	Value(record any, name string) (any, error)

	// ID returns the identity of the record
	// or false if the record has none.
	ID(record any) (id any, ok bool)
}

// HumanAttributeNamer is implemented by models
// that provide human readable attribute names.
type HumanAttributeNamer interface {
	HumanAttributeName(name string) (human string, ok bool)
}

// Labeler is implemented by models that can
// label a record for display as an associated record.
type Labeler interface {
	Label(record any) (label string, ok bool)
}

// Collection is an ordered sequence of records
// of a single record type.
type Collection interface {
	// Model returns nil if the record type can't be determined,
	// which is only possible for empty collections.
	Model() Model
	Len() int
	Record(index int) any
}

var _ Collection = new(Records)

// Records implements Collection for a Model and a slice of records.
type Records struct {
	M    Model
	Rows []any
}

// NewRecords returns Records for rows that are all described by model.
func NewRecords(model Model, rows ...any) *Records {
	return &Records{M: model, Rows: rows}
}

func (r *Records) Model() Model         { return r.M }
func (r *Records) Len() int             { return len(r.Rows) }
func (r *Records) Record(index int) any { return r.Rows[index] }

// CollectionOf normalizes collection to a Collection.
//
// A Collection is returned unchanged.
// Slices and arrays of structs or struct pointers are described by a StructModel.
// Slices of interface type must hold records of a single dynamic type,
// else ErrMixedRecordTypes is returned.
func CollectionOf(collection any) (Collection, error) {
	if c, ok := collection.(Collection); ok {
		return c, nil
	}
	rows := reflect.ValueOf(collection)
	for rows.Kind() == reflect.Ptr && !rows.IsNil() {
		rows = rows.Elem()
	}
	if rows.Kind() != reflect.Slice && rows.Kind() != reflect.Array {
		return nil, fmt.Errorf("collection must be slice or array kind but is %T", collection)
	}

	records := &Records{Rows: make([]any, rows.Len())}
	for i := range records.Rows {
		records.Rows[i] = rows.Index(i).Interface()
	}

	recordType := rows.Type().Elem()
	if recordType.Kind() == reflect.Interface {
		if len(records.Rows) == 0 {
			return records, nil
		}
		recordType = reflect.TypeOf(records.Rows[0])
		for i, record := range records.Rows {
			if t := reflect.TypeOf(record); t != recordType {
				return nil, fmt.Errorf("%w: record %d is %s, record 0 is %s", ErrMixedRecordTypes, i, t, recordType)
			}
		}
	}
	model, err := StructModelOf(recordType)
	if err != nil {
		return nil, err
	}
	records.M = model
	return records, nil
}
