// Package csvtable reads CSV files as tablefor records.
//
// The first non empty row holds the field names and becomes
// the field map of a tablefor.MapModel, every following
// non empty row is a map[string]string record.
//
// Supported are multiple character encodings
// (UTF-8, UTF-16LE, ISO 8859-1, Windows 1252, Macintosh),
// the separators comma, semicolon and tab,
// and Excel style "sep=X" header lines.
package csvtable

import (
	"fmt"
	"unicode/utf8"
)

// Format describes the encoding and separator of CSV data.
//
// An empty Encoding means auto detection from DetectEncodings,
// an empty Separator means detection from the first line.
type Format struct {
	Encoding  string `yaml:"encoding"`
	Separator string `yaml:"separator"`
}

// NewFormat returns a UTF-8 Format with the passed separator.
func NewFormat(separator string) *Format {
	return &Format{Encoding: "UTF-8", Separator: separator}
}

// Validate checks the Format.
// It can be safely called on a nil receiver
// which means auto detection.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return nil
	case f.Separator == "":
		return nil
	case utf8.RuneCountInString(f.Separator) != 1:
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	case f.Separator == `"` || f.Separator == "\n" || f.Separator == "\r":
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	}
	return nil
}

func (f *Format) String() string {
	if f == nil {
		return "csvtable.Format{auto}"
	}
	return fmt.Sprintf("csvtable.Format{Encoding: %q, Separator: %q}", f.Encoding, f.Separator)
}

// DetectEncodings are tested in order when the encoding of
// CSV data is not specified.
var DetectEncodings = []string{
	"UTF-8",
	"UTF-16LE",
	"ISO 8859-1",
	"Windows 1252", // like ANSI
	"Macintosh",
}

// EncodingTests are characters with different byte representations
// across the DetectEncodings used to validate a detected encoding.
var EncodingTests = []string{
	"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
	"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
}
