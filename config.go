package tablefor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	fs "github.com/ungerik/go-fs"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// BlockFunc declares the data of a table.
type BlockFunc func(t *TableBuilder) error

// Config is the configuration of table rendering.
// It is read only during rendering and may be shared
// between concurrent renders.
// Use the With* methods to derive modified copies.
//
// nil is a valid value for *Config and is equal to DefaultConfig().
type Config struct {
	// ExcludeFields are schema column names never displayed
	// by automatic column resolution.
	ExcludeFields []string `yaml:"exclude_fields"`
	// ExcludeSuffixes excludes schema columns ending with one of the suffixes
	// from automatic column resolution, by default foreign keys ending with "_id".
	ExcludeSuffixes []string `yaml:"exclude_suffixes"`
	// LabelFields are the attributes tried in order
	// to label an associated record.
	LabelFields []string `yaml:"label_fields"`

	TableClass      string `yaml:"table_class"`
	OddRowClass     string `yaml:"odd_row_class"`
	EvenRowClass    string `yaml:"even_row_class"`
	ActionCellClass string `yaml:"action_cell_class"`
	// DestroyConfirm is the confirmation question of destroy links,
	// no confirmation is requested if empty.
	DestroyConfirm string `yaml:"destroy_confirm"`
	// NilValue is the text of cells with nil values.
	NilValue string `yaml:"nil_value"`

	// DefaultBlock declares the table data
	// when a render is passed no block.
	DefaultBlock BlockFunc `yaml:"-"`
	// URLBuilder builds action link URLs, RESTPaths if nil.
	URLBuilder URLBuilder `yaml:"-"`
	// Formatters format cell values, may be nil.
	Formatters *TypeFormatters `yaml:"-"`
	// Logger is used for debug logging, no logging if nil.
	Logger *zap.Logger `yaml:"-"`
}

// DefaultConfig returns a new Config with the default settings.
func DefaultConfig() *Config {
	return &Config{
		ExcludeFields:   []string{"id", "created_at", "updated_at"},
		ExcludeSuffixes: []string{"_id"},
		LabelFields:     []string{"to_label", "display_name", "full_name", "name", "title", "username", "login", "value"},
		OddRowClass:     "odd",
		EvenRowClass:    "even",
		ActionCellClass: "actions",
		DestroyConfirm:  "Are you sure?",
	}
}

// ParseConfig parses a YAML configuration.
// Settings missing in the YAML keep their default values,
// unknown settings are an error.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(config)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing table config: %w", err)
	}
	return config, nil
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(file fs.FileReader) (*Config, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading table config %s: %w", file.Name(), err)
	}
	return ParseConfig(data)
}

func (c *Config) orDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	return c
}

func (c *Config) clone() *Config {
	mod := new(Config)
	*mod = *c.orDefault()
	mod.ExcludeFields = slices.Clone(mod.ExcludeFields)
	mod.ExcludeSuffixes = slices.Clone(mod.ExcludeSuffixes)
	mod.LabelFields = slices.Clone(mod.LabelFields)
	return mod
}

// WithDefaultBlock returns a new Config using block
// for renders without a block.
func (c *Config) WithDefaultBlock(block BlockFunc) *Config {
	mod := c.clone()
	mod.DefaultBlock = block
	return mod
}

// WithURLBuilder returns a new Config building action links with urls.
func (c *Config) WithURLBuilder(urls URLBuilder) *Config {
	mod := c.clone()
	mod.URLBuilder = urls
	return mod
}

// WithLogger returns a new Config logging to logger.
func (c *Config) WithLogger(logger *zap.Logger) *Config {
	mod := c.clone()
	mod.Logger = logger
	return mod
}

// WithFormatters returns a new Config with the passed value formatters.
func (c *Config) WithFormatters(formatters *TypeFormatters) *Config {
	mod := c.clone()
	mod.Formatters = formatters
	return mod
}

// WithExcludeFields returns a new Config excluding the passed
// schema columns from automatic column resolution.
func (c *Config) WithExcludeFields(fields ...string) *Config {
	mod := c.clone()
	mod.ExcludeFields = fields
	return mod
}

// WithTableClass returns a new Config with the CSS class of the table element.
func (c *Config) WithTableClass(class string) *Config {
	mod := c.clone()
	mod.TableClass = class
	return mod
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Config) urlBuilder() URLBuilder {
	if c.URLBuilder == nil {
		return RESTPaths
	}
	return c.URLBuilder
}

func (c *Config) excluded(field string) bool {
	if slices.Contains(c.ExcludeFields, field) {
		return true
	}
	for _, suffix := range c.ExcludeSuffixes {
		if suffix != "" && field != suffix && strings.HasSuffix(field, suffix) {
			return true
		}
	}
	return false
}
