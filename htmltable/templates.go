package htmltable

import (
	"html/template"

	"github.com/domonda/go-tablefor"
)

var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{.Attrs.HTMLAttr}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}" +
			"  <thead>\n" +
			"    <tr>{{range $cell := .Head}}<th{{$cell.Attrs.HTMLAttr}}>{{$cell.Content}}</th>{{end}}</tr>\n" +
			"  </thead>\n" +
			"  <tbody>\n",
	))

	RowTemplate = template.Must(template.New("row").Parse(
		"    <tr{{.Attrs.HTMLAttr}}>{{range $cell := .Cells}}<td{{$cell.Attrs.HTMLAttr}}>{{$cell.Content}}</td>{{end}}</tr>\n",
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"  </tbody>\n" +
			"{{if .Foot}}  <tfoot>\n" +
			"    <tr>{{range $cell := .Foot}}<td{{$cell.Attrs.HTMLAttr}}>{{$cell.Content}}</td>{{end}}</tr>\n" +
			"  </tfoot>\n{{end}}" +
			"</table>",
	))
)

// TemplateContext is passed to the header and footer templates.
type TemplateContext struct {
	*tablefor.Table

	Caption string
}

// RowTemplateContext is passed to the row template
// for every body row.
type RowTemplateContext struct {
	tablefor.TableRow

	RowIndex int
}
