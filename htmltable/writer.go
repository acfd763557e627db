// Package htmltable writes tables assembled by tablefor.Build as HTML.
//
// The table is rendered with html/template templates
// into a buffer first so that a failed render
// never writes partial output.
//
// Example usage:
//
//	html, err := htmltable.TableFor(ctx, posts, nil, func(t *tablefor.TableBuilder) error {
//	    return t.Data(tablefor.Fields("title", "body"), tablefor.Actions(tablefor.AllActions))
//	})
package htmltable

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"

	"github.com/domonda/go-tablefor"
)

// Writer writes assembled tables as HTML table elements.
//
// Writer is immutable after creation - all With* methods return
// a new Writer instance with the modified configuration.
type Writer struct {
	caption        string
	headerTemplate *template.Template
	rowTemplate    *template.Template
	footerTemplate *template.Template
}

// NewWriter creates a new HTML table writer using
// HeaderTemplate, RowTemplate and FooterTemplate.
func NewWriter() *Writer {
	return &Writer{
		headerTemplate: HeaderTemplate,
		rowTemplate:    RowTemplate,
		footerTemplate: FooterTemplate,
	}
}

// Write writes the table as HTML to dest.
// Nothing is written if the context is canceled
// or a template fails.
func (w *Writer) Write(ctx context.Context, dest io.Writer, table *tablefor.Table) error {
	var buf bytes.Buffer
	err := w.render(ctx, &buf, table)
	if err != nil {
		return err
	}
	_, err = dest.Write(buf.Bytes())
	return err
}

// HTML returns the table as HTML fragment.
func (w *Writer) HTML(ctx context.Context, table *tablefor.Table) (template.HTML, error) {
	var buf bytes.Buffer
	err := w.render(ctx, &buf, table)
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //#nosec G203
}

func (w *Writer) render(ctx context.Context, buf *bytes.Buffer, table *tablefor.Table) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if table == nil {
		return errors.New("htmltable: nil table")
	}

	templData := &TemplateContext{Table: table, Caption: w.caption}
	err := w.headerTemplate.Execute(buf, templData)
	if err != nil {
		return err
	}
	for i, row := range table.Rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = w.rowTemplate.Execute(buf, &RowTemplateContext{TableRow: row, RowIndex: i})
		if err != nil {
			return err
		}
	}
	return w.footerTemplate.Execute(buf, templData)
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WithCaption returns a new writer rendering a caption element
// if caption is not empty.
func (w *Writer) WithCaption(caption string) *Writer {
	mod := w.clone()
	mod.caption = caption
	return mod
}

// WithTemplate returns a new writer with custom templates for rendering the HTML table.
//
// The header and footer templates receive a TemplateContext,
// the row template a RowTemplateContext.
// See templates.go for the default templates.
func (w *Writer) WithTemplate(headerTemplate, rowTemplate, footerTemplate *template.Template) *Writer {
	mod := w.clone()
	mod.headerTemplate = headerTemplate
	mod.rowTemplate = rowTemplate
	mod.footerTemplate = footerTemplate
	return mod
}

// Caption returns the configured caption.
func (w *Writer) Caption() string {
	return w.caption
}

// TableFor builds the table for collection and returns it as HTML.
// See tablefor.Build for the meaning of the arguments.
func TableFor(ctx context.Context, collection any, config *tablefor.Config, block tablefor.BlockFunc) (template.HTML, error) {
	table, err := tablefor.Build(ctx, collection, config, block)
	if err != nil {
		return "", err
	}
	return NewWriter().HTML(ctx, table)
}

// WriteTableFor builds the table for collection and writes it as HTML to dest.
func WriteTableFor(ctx context.Context, dest io.Writer, collection any, config *tablefor.Config, block tablefor.BlockFunc) error {
	table, err := tablefor.Build(ctx, collection, config, block)
	if err != nil {
		return err
	}
	return NewWriter().Write(ctx, dest, table)
}
