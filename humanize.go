package tablefor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
)

// Humanize returns the default heading for an attribute name.
// A trailing "_id" is removed, underscores and PascalCase
// word boundaries become spaces and only the first
// character is upper case:
//
//	Humanize("created_at") == "Created at"
//	Humanize("author_id") == "Author"
//	Humanize("CreatedAt") == "Created at"
func Humanize(name string) string {
	name = strings.TrimSuffix(name, "_id")
	name = strings.ToLower(SpacePascalCase(name))
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// SpacePascalCase inserts spaces before upper case
// characters within PascalCase like names.
// It also replaces underscore '_' characters with spaces.
func SpacePascalCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	lastWasUpper := true
	lastWasSpace := true
	for _, r := range name {
		if r == '_' {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasUpper = false
			lastWasSpace = true
			continue
		}
		isUpper := unicode.IsUpper(r)
		if isUpper && !lastWasUpper && !lastWasSpace {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		lastWasUpper = isUpper
		lastWasSpace = unicode.IsSpace(r)
	}
	return strings.TrimSpace(b.String())
}

// SnakeCase converts a Go identifier to an underscore name:
//
//	SnakeCase("CreatedAt") == "created_at"
//	SnakeCase("AuthorID") == "author_id"
//	SnakeCase("HTMLBody") == "html_body"
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prev != '_' && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower)) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// PascalCase converts an underscore name to a Go identifier:
//
//	PascalCase("full_name") == "FullName"
func PascalCase(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	upperNext := true
	for _, r := range name {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CollectionName returns the plural route and table name
// for a singular model name, e.g. "posts" for "post".
func CollectionName(modelName string) string {
	if modelName == "" {
		return ""
	}
	return inflection.Plural(modelName)
}

// ModelName returns the singular model name for
// a collection or sheet name, e.g. "post" for "Posts".
func ModelName(collectionName string) string {
	name := strings.ReplaceAll(strings.TrimSpace(collectionName), " ", "_")
	return inflection.Singular(SnakeCase(name))
}
