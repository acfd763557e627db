package tablefor

import (
	"fmt"
	"reflect"
	"strings"
)

// DefaultStructFieldNaming uses the "db" tag as attribute name,
// the "col" tag as human readable heading, the "assoc" tag
// to mark belongs_to and has_one associations,
// ignores fields tagged with "-" and uses SnakeCase for untagged fields.
var DefaultStructFieldNaming = StructFieldNaming{
	NameTag:        "db",
	HeadingTag:     "col",
	AssociationTag: "assoc",
	Ignore:         "-",
	Untagged:       SnakeCase,
}

// StructFieldNaming defines how struct fields
// are mapped to attribute names used by a StructModel.
//
// nil is a valid value for *StructFieldNaming
// and is equal to the zero value
// which will use all exported struct fields
// with their field name as attribute name.
type StructFieldNaming struct {
	// NameTag is the struct field tag to be used as attribute name.
	// If NameTag is empty, then every struct field will be treated as untagged.
	NameTag string
	// HeadingTag is the struct field tag holding
	// the human readable attribute name.
	HeadingTag string
	// AssociationTag marks struct fields holding associated
	// records with the values "belongs_to" or "has_one".
	AssociationTag string
	// Ignore is the tag value of NameTag or HeadingTag
	// that excludes a struct field.
	Ignore string
	// Untagged will be called with the struct field name to
	// return an attribute name in case the struct field has no tag named NameTag.
	// If Untagged is nil, then the struct field name will be used.
	Untagged func(fieldName string) (name string)
}

// String implements the fmt.Stringer interface for StructFieldNaming.
func (n *StructFieldNaming) String() string {
	if n == nil {
		return `StructFieldNaming{NameTag: "", Ignore: ""}`
	}
	return fmt.Sprintf("StructFieldNaming{NameTag: %#v, Ignore: %#v}", n.NameTag, n.Ignore)
}

// IsIgnored returns true if the struct field
// is tagged to be excluded from tables.
func (n *StructFieldNaming) IsIgnored(structField reflect.StructField) bool {
	if n == nil || n.Ignore == "" {
		return false
	}
	if tagValue(structField, n.NameTag) == n.Ignore {
		return true
	}
	return tagValue(structField, n.HeadingTag) == n.Ignore
}

// FieldName returns the attribute name for a struct field.
func (n *StructFieldNaming) FieldName(structField reflect.StructField) string {
	if n == nil {
		return structField.Name
	}
	if name := tagValue(structField, n.NameTag); name != "" {
		return name
	}
	if n.Untagged == nil {
		return structField.Name
	}
	return n.Untagged(structField.Name)
}

// FieldHeading returns the human readable name
// of a struct field if it is tagged with one.
func (n *StructFieldNaming) FieldHeading(structField reflect.StructField) (string, bool) {
	if n == nil {
		return "", false
	}
	heading := tagValue(structField, n.HeadingTag)
	return heading, heading != ""
}

// FieldAssociation returns the association kind
// a struct field is tagged with or zero.
func (n *StructFieldNaming) FieldAssociation(structField reflect.StructField) (AssociationKind, error) {
	if n == nil {
		return 0, nil
	}
	switch tag := tagValue(structField, n.AssociationTag); tag {
	case "":
		return 0, nil
	case "belongs_to":
		return BelongsTo, nil
	case "has_one":
		return HasOne, nil
	default:
		return 0, fmt.Errorf("invalid %s tag value %q of struct field %s", n.AssociationTag, tag, structField.Name)
	}
}

func tagValue(structField reflect.StructField, tag string) string {
	if tag == "" {
		return ""
	}
	value, ok := structField.Tag.Lookup(tag)
	if !ok {
		return ""
	}
	if i := strings.IndexByte(value, ','); i != -1 {
		value = value[:i]
	}
	return value
}
