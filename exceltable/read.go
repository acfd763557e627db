// Package exceltable reads the sheets of Excel files (.xlsx, .xlsm, .xltm, .xltx)
// as tablefor records.
//
// The first row of a sheet holds the field names, every following
// non empty row is a map[string]string record of a tablefor.MapModel
// named after the singular of the sheet name, so a sheet "Posts"
// is read as "post" records.
// Empty rows and empty leading and trailing columns are removed.
//
// Example usage:
//
//	sheets, err := exceltable.ReadFile(fs.File("posts.xlsx"), false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, records := range sheets {
//	    fmt.Printf("%s: %d records\n", records.Model().Name(), records.Len())
//	}
package exceltable

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	fs "github.com/ungerik/go-fs"
	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-tablefor"
)

// ReadFirstSheet reads the first sheet of an Excel file.
//
// If rawCellStrings is true, cell values are returned as raw strings without
// formatting applied. If false, Excel's display formatting is used (e.g.,
// dates and numbers are formatted according to the cell's number format).
//
// ErrEmptySheet is returned if the first sheet has no data.
func ReadFirstSheet(reader io.Reader, rawCellStrings bool) (records *tablefor.Records, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
	}
	return readSheet(f, sheet, rawCellStrings)
}

// ReadSheet reads the sheet with the passed name of an Excel file.
func ReadSheet(reader io.Reader, sheet string, rawCellStrings bool) (records *tablefor.Records, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if idx, e := f.GetSheetIndex(sheet); e != nil || idx < 0 {
		return nil, ErrSheetNotExist{SheetName: sheet}
	}
	return readSheet(f, sheet, rawCellStrings)
}

// Read reads all non empty sheets of an Excel file
// in the order of the workbook.
func Read(reader io.Reader, rawCellStrings bool) (sheets []*tablefor.Records, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	for _, sheet := range f.GetSheetList() {
		records, err := readSheet(f, sheet, rawCellStrings)
		if err != nil {
			if errors.Is(err, ErrEmptySheet) {
				continue
			}
			return nil, err
		}
		sheets = append(sheets, records)
	}
	return sheets, nil
}

// ReadFile reads all non empty sheets of an Excel file.
func ReadFile(file fs.FileReader, rawCellStrings bool) ([]*tablefor.Records, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	sheets, err := Read(bytes.NewReader(data), rawCellStrings)
	if err != nil {
		return nil, fmt.Errorf("reading Excel file %s: %w", file.Name(), err)
	}
	return sheets, nil
}

func readSheet(f *excelize.File, sheet string, rawCellStrings bool) (*tablefor.Records, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: rawCellStrings})
	if err != nil {
		return nil, err
	}
	rows = tablefor.RemoveEmptyStringRows(rows)
	numCols := tablefor.RemoveEmptyStringColumns(rows)
	if len(rows) == 0 || numCols == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySheet, sheet)
	}
	if header := rows[0]; len(header) < numCols {
		// Pad header so that every column gets a name
		rows[0] = append(header, make([]string, numCols-len(header))...)
	}
	return tablefor.StringRecords(tablefor.ModelName(sheet), rows)
}
