package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-tablefor"
)

// Read parses CSV data and returns its rows as records
// of a model with the passed singular name using tablefor.StringRecords.
// Empty rows are skipped.
// A nil format means detection of encoding and separator.
func Read(data []byte, format *Format, modelName string) (*tablefor.Records, error) {
	rows, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	return tablefor.StringRecords(modelName, rows)
}

// ReadFile reads a CSV file with Read using the
// singular of the file name without extension as model name,
// so "Blog Posts.csv" becomes "blog_post".
func ReadFile(file fs.FileReader, format *Format) (*tablefor.Records, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	name := file.Name()
	records, err := Read(data, format, tablefor.ModelName(strings.TrimSuffix(name, path.Ext(name))))
	if err != nil {
		return nil, fmt.Errorf("reading CSV file %s: %w", name, err)
	}
	return records, nil
}

// Parse decodes CSV data to UTF-8 and returns
// the fields of all non empty rows.
func Parse(data []byte, format *Format) (rows [][]string, err error) {
	err = format.Validate()
	if err != nil {
		return nil, err
	}
	var encoding, separator string
	if format != nil {
		encoding, separator = format.Encoding, format.Separator
	}

	data, err = decode(data, encoding)
	if err != nil {
		return nil, err
	}
	data = sanitizeUTF8(data)

	firstLine, rest, _ := bytes.Cut(data, []byte{'\n'})
	if headerSep := parseSepHeaderLine(bytes.TrimRight(firstLine, "\r")); headerSep != "" {
		if separator != "" && headerSep != separator {
			return nil, fmt.Errorf("separator %q in header line is different from format separator %q", headerSep, separator)
		}
		separator = headerSep
		data = rest
	}
	if separator == "" {
		separator = detectSeparator(firstLine)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = []rune(separator)[0]
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if tablefor.IsEmptyStringRow(record) {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func decode(data []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "":
		encodings := make([]charset.Encoding, 0, len(DetectEncodings))
		for _, name := range DetectEncodings {
			enc, err := charset.GetEncoding(name)
			if err != nil {
				return nil, err
			}
			encodings = append(encodings, enc)
		}
		decoded, _, err := charset.AutoDecode(data, encodings, EncodingTests)
		if err != nil {
			return nil, err
		}
		return charset.TrimBOM(decoded, charset.BOMUTF8), nil
	case "UTF-8":
		return charset.TrimBOM(data, charset.BOMUTF8), nil
	default:
		enc, err := charset.GetEncoding(encoding)
		if err != nil {
			return nil, err
		}
		return enc.Decode(data)
	}
}

// detectSeparator returns the most frequent
// of comma, semicolon and tab, defaulting to comma.
func detectSeparator(line []byte) string {
	var (
		commas     = bytes.Count(line, []byte{','})
		semicolons = bytes.Count(line, []byte{';'})
		tabs       = bytes.Count(line, []byte{'\t'})
	)
	switch {
	case semicolons > commas && semicolons > tabs:
		return ";"
	case tabs > commas && tabs > semicolons:
		return "\t"
	default:
		return ","
	}
}

// parseSepHeaderLine returns the separator of a
// "sep=X" or "SEP=X" line, optionally in double quotes,
// or an empty string if line is not such a header.
func parseSepHeaderLine(line []byte) string {
	if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	if len(line) != 5 {
		return ""
	}
	if !bytes.HasPrefix(line, []byte("sep=")) && !bytes.HasPrefix(line, []byte("SEP=")) {
		return ""
	}
	return string(line[4:5])
}

func sanitizeUTF8(str []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			// \u00a0 is No-Break Space (NBSP)
			case utf8.RuneError, '\u00a0':
				return ' '
			default:
				return r
			}
		},
		str,
	)
}
