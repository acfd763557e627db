package tablefor

import (
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"
)

// Table is a fully assembled table ready to be written as HTML.
type Table struct {
	Attrs Attrs
	Head  []TableCell
	Rows  []TableRow
	// Foot is nil if no column declares a footer.
	Foot []TableCell
}

// HasFoot returns true if the table has a footer row.
func (t *Table) HasFoot() bool {
	return t.Foot != nil
}

type TableRow struct {
	Attrs Attrs
	Cells []TableCell
}

type TableCell struct {
	Attrs   Attrs
	Content template.HTML
}

// Build normalizes collection, runs block to declare the columns
// and assembles the complete table in memory.
//
// If block is nil then config.DefaultBlock is used,
// and if that is also nil the table has no columns.
// Any error from the block, a column value or the context
// fails the whole build and no partial table is returned.
func Build(ctx context.Context, collection any, config *Config, block BlockFunc) (*Table, error) {
	config = config.orDefault()
	records, err := CollectionOf(collection)
	if err != nil {
		return nil, err
	}
	t := newTableBuilder(ctx, records, config)
	if block == nil {
		block = config.DefaultBlock
		if block != nil {
			config.logger().Debug("Using default table block", zap.String("model", t.modelName()))
		}
	}
	if block != nil {
		if err := block(t); err != nil {
			return nil, err
		}
		if t.err != nil {
			return nil, t.err
		}
	}
	return t.assemble(ctx)
}

func (t *TableBuilder) assemble(ctx context.Context) (*Table, error) {
	table := &Table{Attrs: Attrs{}}
	if name := t.modelName(); name != "" {
		table.Attrs["id"] = CollectionName(name)
	}
	if t.config.TableClass != "" {
		table.Attrs["class"] = t.config.TableClass
	}

	table.Head = make([]TableCell, len(t.columns))
	for i, column := range t.columns {
		table.Head[i] = TableCell{
			Attrs:   column.HeadingHTML,
			Content: template.HTML(template.HTMLEscapeString(column.Heading)), //#nosec G203
		}
	}

	numRows := t.collection.Len()
	table.Rows = make([]TableRow, numRows)
	for row := range numRows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record := t.collection.Record(row)
		table.Rows[row] = TableRow{
			Attrs: t.rowAttrs(row, record),
			Cells: make([]TableCell, len(t.columns)),
		}
		for col, column := range t.columns {
			cell, err := t.bodyCell(ctx, column, record)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d %q: %w", row, col, column.Name, err)
			}
			table.Rows[row].Cells[col] = cell
		}
	}

	for _, column := range t.columns {
		if column.HasFooter() {
			table.Foot = make([]TableCell, len(t.columns))
			break
		}
	}
	if table.Foot != nil {
		for col, column := range t.columns {
			if !column.HasFooter() {
				continue
			}
			content, err := t.config.FormatHTML(ctx, column.Footer())
			if err != nil {
				return nil, fmt.Errorf("footer column %d %q: %w", col, column.Name, err)
			}
			table.Foot[col].Content = content
		}
	}

	t.config.logger().Debug("Assembled table",
		zap.String("model", t.modelName()),
		zap.Int("rows", numRows),
		zap.Int("columns", len(t.columns)),
		zap.Bool("footer", table.HasFoot()),
	)
	return table, nil
}

// rowAttrs returns the id and the alternating class of a body row.
// The first row is odd.
func (t *TableBuilder) rowAttrs(row int, record any) Attrs {
	attrs := Attrs{}
	class := t.config.OddRowClass
	if row%2 == 1 {
		class = t.config.EvenRowClass
	}
	if class != "" {
		attrs["class"] = class
	}
	if t.model != nil {
		if id, ok := t.model.ID(record); ok {
			attrs["id"] = t.model.Name() + "_" + displayString(id)
		}
	}
	return attrs
}

func (t *TableBuilder) bodyCell(ctx context.Context, column *Column, record any) (TableCell, error) {
	var cell TableCell
	if column.CellHTML != nil {
		cell.Attrs = column.CellHTML(record)
	}
	if column.Value == nil {
		return cell, nil
	}
	value, err := column.Value(record)
	if err != nil {
		return cell, err
	}
	cell.Content, err = t.config.FormatHTML(ctx, value)
	return cell, err
}
