package tablefor

import (
	"html/template"
	"maps"
	"slices"
	"strings"
)

// Attrs are HTML attributes of a table element.
type Attrs map[string]string

// HTMLAttr returns the attributes sorted by name
// with escaped values and a leading space
// for use within an HTML start tag.
// Attributes with invalid names are skipped.
func (a Attrs) HTMLAttr() template.HTMLAttr {
	if len(a) == 0 {
		return ""
	}
	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(a)) {
		if !validAttrName(name) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(template.HTMLEscapeString(a[name]))
		b.WriteByte('"')
	}
	return template.HTMLAttr(b.String()) //#nosec G203
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == ':':
		default:
			return false
		}
	}
	return true
}

// Column is the rendering definition of one table column.
// Columns are unique by position, not by Name.
type Column struct {
	// Name of the attribute or association, or of the action.
	Name        string
	Heading     string
	HeadingHTML Attrs
	// CellHTML returns the attributes of the body cell
	// of a record, may be nil.
	CellHTML func(record any) Attrs
	// Value returns the cell content for a record.
	// A template.HTML result is embedded without escaping.
	Value func(record any) (any, error)
	// Footer returns the footer cell content,
	// nil if the column has no footer.
	Footer func() any
}

// HasFooter returns true if the column declares a footer.
func (c *Column) HasFooter() bool {
	return c.Footer != nil
}

// CellOption modifies the Column declared by TableBuilder.Cell.
type CellOption func(*Column)

// Heading overrides the humanized heading of the column.
func Heading(heading string) CellOption {
	return func(c *Column) { c.Heading = heading }
}

// HeadingHTML sets the attributes of the header cell.
func HeadingHTML(attrs Attrs) CellOption {
	return func(c *Column) { c.HeadingHTML = attrs }
}

// CellHTML sets the attributes of every body cell of the column.
func CellHTML(attrs Attrs) CellOption {
	return func(c *Column) {
		c.CellHTML = func(any) Attrs { return attrs }
	}
}

// CellHTMLFunc sets a function returning
// the attributes of the body cell of a record.
func CellHTMLFunc(attrs func(record any) Attrs) CellOption {
	return func(c *Column) { c.CellHTML = attrs }
}

// Footer declares a footer cell with a literal value
// or a precomputed aggregate like a count or sum.
// A nil value declares no footer.
func Footer(value any) CellOption {
	return func(c *Column) {
		if value == nil {
			c.Footer = nil
			return
		}
		c.Footer = func() any { return value }
	}
}

// FooterFunc declares a footer cell whose value
// is computed when the table is assembled.
func FooterFunc(footer func() any) CellOption {
	return func(c *Column) { c.Footer = footer }
}

// Value sets a block computing the cell value for a record
// instead of reading the attribute of the column name.
// Return a template.HTML to embed markup.
func Value(value func(record any) any) CellOption {
	return func(c *Column) {
		c.Value = func(record any) (any, error) { return value(record), nil }
	}
}

// ValueErr is like Value for blocks that can fail.
// An error fails the whole render.
func ValueErr(value func(record any) (any, error)) CellOption {
	return func(c *Column) { c.Value = value }
}
