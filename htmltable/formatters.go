package htmltable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"reflect"

	"github.com/domonda/go-tablefor"
)

var (
	HTMLPreFormatter tablefor.ValueFormatterFunc = func(ctx context.Context, val reflect.Value) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(fmt.Sprint(val.Interface()))
		return "<pre>" + value + "</pre>", true, nil
	}

	HTMLCodeFormatter tablefor.ValueFormatterFunc = func(ctx context.Context, val reflect.Value) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(fmt.Sprint(val.Interface()))
		return "<code>" + value + "</code>", true, nil
	}

	// ValueAsHTMLAnchorFormatter formats the value using fmt.Sprint,
	// escapes it for HTML and returns an HTML anchor element with the
	// value as id and inner text.
	ValueAsHTMLAnchorFormatter tablefor.ValueFormatterFunc = func(ctx context.Context, val reflect.Value) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(fmt.Sprint(val.Interface()))
		return fmt.Sprintf(`<a id="%[1]s">%[1]s</a>`, value), true, nil
	}

	_ tablefor.ValueFormatter = JSONFormatter("")
	_ tablefor.ValueFormatter = HTMLSpanClassFormatter("")
)

// JSONFormatter formats JSON text or any other value
// marshalled as JSON within an HTML pre element.
// The underlying string is the indent, compact JSON if empty.
type JSONFormatter string

func (indent JSONFormatter) FormatValue(ctx context.Context, val reflect.Value) (str string, raw bool, err error) {
	var src []byte
	switch v := val.Interface().(type) {
	case json.RawMessage:
		src = v
	case []byte:
		src = v
	case string:
		src = []byte(v)
	default:
		src, err = json.Marshal(v)
		if err != nil {
			return "", false, err
		}
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return "", false, nil
	}
	var buf bytes.Buffer
	if indent == "" {
		err = json.Compact(&buf, src)
	} else {
		err = json.Indent(&buf, src, "", string(indent))
	}
	if err != nil {
		return "", false, err
	}
	return "<pre>" + template.HTMLEscapeString(buf.String()) + "</pre>", true, nil
}

// HTMLSpanClassFormatter formats the value within an HTML span element
// with the class of the underlying string value.
type HTMLSpanClassFormatter string

func (class HTMLSpanClassFormatter) FormatValue(ctx context.Context, val reflect.Value) (str string, raw bool, err error) {
	text := template.HTMLEscapeString(fmt.Sprint(val.Interface()))
	return fmt.Sprintf(`<span class="%s">%s</span>`, template.HTMLEscapeString(string(class)), text), true, nil
}
