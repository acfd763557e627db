package tablefor

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"maps"
	"reflect"
)

// ValueFormatter formats a reflected cell value as string.
type ValueFormatter interface {
	// FormatValue formats val as string
	// or returns a wrapped errors.ErrUnsupported error if
	// it doesn't support formatting the value.
	// The raw result indicates if the returned string
	// is HTML that can be used as is or if it has to be escaped.
	FormatValue(ctx context.Context, val reflect.Value) (str string, raw bool, err error)
}

// ValueFormatterFunc implements ValueFormatter for a function.
type ValueFormatterFunc func(ctx context.Context, val reflect.Value) (str string, raw bool, err error)

func (f ValueFormatterFunc) FormatValue(ctx context.Context, val reflect.Value) (str string, raw bool, err error) {
	return f(ctx, val)
}

// PrintfFormatter implements ValueFormatter by calling
// fmt.Sprintf with this type's string value as format.
type PrintfFormatter string

func (format PrintfFormatter) FormatValue(ctx context.Context, val reflect.Value) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), val.Interface()), false, nil
}

// LayoutFormatter formats values with a Format(layout string) string
// method like time.Time using this type's string value as layout.
type LayoutFormatter string

func (layout LayoutFormatter) FormatValue(ctx context.Context, val reflect.Value) (str string, raw bool, err error) {
	formatter, ok := val.Interface().(interface{ Format(string) string })
	if !ok {
		return "", false, errors.ErrUnsupported
	}
	return formatter.Format(string(layout)), false, nil
}

// Ensure that TypeFormatters implements ValueFormatter
var _ ValueFormatter = new(TypeFormatters)

// TypeFormatters selects a ValueFormatter by the exact type,
// an implemented interface type, or the kind of a value.
// Other is used if nothing else matches.
//
// nil is a valid value for *TypeFormatters
// that always returns errors.ErrUnsupported.
type TypeFormatters struct {
	Types          map[reflect.Type]ValueFormatter
	InterfaceTypes map[reflect.Type]ValueFormatter
	Kinds          map[reflect.Kind]ValueFormatter
	Other          ValueFormatter
}

func NewTypeFormatters() *TypeFormatters {
	return new(TypeFormatters)
}

func (f *TypeFormatters) FormatValue(ctx context.Context, val reflect.Value) (str string, raw bool, err error) {
	if f == nil || !val.IsValid() {
		return "", false, errors.ErrUnsupported
	}
	if tw, ok := f.Types[val.Type()]; ok {
		str, raw, err := tw.FormatValue(ctx, val)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	for it, iw := range f.InterfaceTypes {
		if val.Type().Implements(it) {
			str, raw, err := iw.FormatValue(ctx, val)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
		}
	}
	if kw, ok := f.Kinds[val.Kind()]; ok {
		str, raw, err := kw.FormatValue(ctx, val)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return f.FormatValue(ctx, val.Elem())
	}
	if f.Other != nil {
		return f.Other.FormatValue(ctx, val)
	}
	return "", false, errors.ErrUnsupported
}

func (f *TypeFormatters) cloneOrNew() *TypeFormatters {
	if f == nil {
		return new(TypeFormatters)
	}
	return &TypeFormatters{
		Types:          maps.Clone(f.Types),
		InterfaceTypes: maps.Clone(f.InterfaceTypes),
		Kinds:          maps.Clone(f.Kinds),
		Other:          f.Other,
	}
}

func (f *TypeFormatters) WithTypeFormatter(typ reflect.Type, fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.Types == nil {
		mod.Types = make(map[reflect.Type]ValueFormatter)
	}
	mod.Types[typ] = fmt
	return mod
}

func (f *TypeFormatters) WithInterfaceTypeFormatter(typ reflect.Type, fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.InterfaceTypes == nil {
		mod.InterfaceTypes = make(map[reflect.Type]ValueFormatter)
	}
	mod.InterfaceTypes[typ] = fmt
	return mod
}

func (f *TypeFormatters) WithKindFormatter(kind reflect.Kind, fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.Kinds == nil {
		mod.Kinds = make(map[reflect.Kind]ValueFormatter)
	}
	mod.Kinds[kind] = fmt
	return mod
}

func (f *TypeFormatters) WithOtherFormatter(fmt ValueFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	mod.Other = fmt
	return mod
}

// FormatHTML formats a cell value as HTML.
//
// A template.HTML value is a fragment that is returned unchanged.
// Other values are formatted with the configured Formatters
// falling back to fmt.Sprint and are HTML escaped
// unless the formatter returned raw HTML.
// Nil values are rendered as the escaped NilValue.
func (c *Config) FormatHTML(ctx context.Context, value any) (template.HTML, error) {
	if fragment, ok := value.(template.HTML); ok {
		return fragment, nil
	}
	val := reflect.ValueOf(value)
	if ValueIsNil(val) {
		return template.HTML(template.HTMLEscapeString(c.NilValue)), nil //#nosec G203
	}
	str, raw, err := c.Formatters.FormatValue(ctx, val)
	if err != nil {
		if !errors.Is(err, errors.ErrUnsupported) {
			return "", err
		}
		// In case of errors.ErrUnsupported
		// use fallback method of formatting
		for val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return template.HTML(template.HTMLEscapeString(c.NilValue)), nil //#nosec G203
			}
			val = val.Elem()
		}
		str, raw = fmt.Sprint(val.Interface()), false
	}
	if !raw {
		str = template.HTMLEscapeString(str)
	}
	return template.HTML(str), nil //#nosec G203
}
