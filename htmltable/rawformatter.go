package htmltable

import (
	"context"
	"errors"
	"html/template"
	"reflect"

	"github.com/domonda/go-tablefor"
)

var (
	_ tablefor.ValueFormatter = Raw("")
	_ tablefor.ValueFormatter = RawStringFormatter
)

// Raw is a ValueFormatter that renders the same
// HTML fragment for every value.
type Raw template.HTML

func (r Raw) FormatValue(ctx context.Context, val reflect.Value) (string, bool, error) {
	return string(r), true, nil
}

// RawStringFormatter formats values of string kind as trusted HTML
// without escaping. Only use it for trusted content.
var RawStringFormatter tablefor.ValueFormatterFunc = func(ctx context.Context, val reflect.Value) (string, bool, error) {
	if val.Kind() != reflect.String {
		return "", false, errors.ErrUnsupported
	}
	return val.String(), true, nil
}
