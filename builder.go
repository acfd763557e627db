package tablefor

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// TableBuilder is passed to the BlockFunc of a render
// to declare the data columns of the table.
//
// A TableBuilder is only valid during the render it was created for
// and must not be used concurrently.
type TableBuilder struct {
	ctx        context.Context
	config     *Config
	collection Collection
	model      Model
	columns    []*Column

	declaring    bool
	dataDeclared bool
	err          error
}

func newTableBuilder(ctx context.Context, collection Collection, config *Config) *TableBuilder {
	return &TableBuilder{
		ctx:        ctx,
		config:     config,
		collection: collection,
		model:      collection.Model(),
	}
}

func (t *TableBuilder) Context() context.Context { return t.ctx }

func (t *TableBuilder) Config() *Config { return t.config }

func (t *TableBuilder) Collection() Collection { return t.collection }

// Model returns the model of the records, may be nil
// for an empty collection of undeterminable type.
func (t *TableBuilder) Model() Model { return t.model }

// Columns returns the columns declared so far.
func (t *TableBuilder) Columns() []*Column { return t.columns }

// Err returns the first error of a declaration.
func (t *TableBuilder) Err() error { return t.err }

func (t *TableBuilder) fail(err error) error {
	if t.err == nil {
		t.err = err
	}
	return err
}

// DataOption configures one TableBuilder.Data call.
type DataOption func(*dataOptions)

type dataOptions struct {
	fields  []string
	actions []Action
	prefix  Prefix
	declare func(t *TableBuilder)
}

// Fields lists the columns to display instead of resolving them automatically.
// Ignored if combined with Declare.
func Fields(names ...string) DataOption {
	return func(o *dataOptions) { o.fields = append(o.fields, names...) }
}

// Actions appends action link columns after the data columns.
func Actions(actions ...Action) DataOption {
	return func(o *dataOptions) { o.actions = append(o.actions, actions...) }
}

// ActionPrefix sets the namespace or parent resource of action links.
func ActionPrefix(prefix Prefix) DataOption {
	return func(o *dataOptions) { o.prefix = prefix }
}

// Declare passes a block declaring the columns
// with TableBuilder.Cell calls.
func Declare(block func(t *TableBuilder)) DataOption {
	return func(o *dataOptions) { o.declare = block }
}

// population is how the data columns are derived.
// Exactly one of automatic, listed or declared applies per Data call.
type population interface {
	populate(t *TableBuilder) error
	String() string
}

type automaticPopulation struct{}

func (automaticPopulation) String() string { return "automatic" }

func (automaticPopulation) populate(t *TableBuilder) error {
	if t.model == nil && t.collection.Len() == 0 {
		return nil
	}
	fields, err := ResolveFields(t.model, t.config)
	if err != nil {
		return err
	}
	for _, field := range fields {
		column := t.newColumn(field.Name)
		if field.Kind == HasOneAssociation {
			column.Value = func(any) (any, error) { return nil, nil }
		}
		t.columns = append(t.columns, column)
	}
	return nil
}

type listedPopulation []string

func (listedPopulation) String() string { return "listed" }

func (l listedPopulation) populate(t *TableBuilder) error {
	for _, name := range l {
		t.columns = append(t.columns, t.newColumn(name))
	}
	return nil
}

type declaredPopulation func(t *TableBuilder)

func (declaredPopulation) String() string { return "declared" }

func (d declaredPopulation) populate(t *TableBuilder) error {
	t.declaring = true
	defer func() { t.declaring = false }()
	d(t)
	return t.err
}

func (o *dataOptions) population() population {
	switch {
	case o.declare != nil:
		return declaredPopulation(o.declare)
	case len(o.fields) > 0:
		return listedPopulation(o.fields)
	default:
		return automaticPopulation{}
	}
}

// Data declares the columns of the table.
// Without Fields or Declare options the columns are
// resolved automatically from the model of the records.
// Action columns are appended after the data columns.
//
// Data may only be called once per table.
func (t *TableBuilder) Data(options ...DataOption) error {
	if t.err != nil {
		return t.err
	}
	if t.dataDeclared {
		return t.fail(ErrDataDeclaredTwice)
	}
	t.dataDeclared = true

	var opts dataOptions
	for _, opt := range options {
		opt(&opts)
	}
	actions, err := ExpandActions(opts.actions...)
	if err != nil {
		return t.fail(err)
	}
	pop := opts.population()
	if err := pop.populate(t); err != nil {
		return t.fail(err)
	}
	for _, action := range actions {
		t.columns = append(t.columns, t.actionColumn(action, opts.prefix))
	}

	t.config.logger().Debug("Declared table data",
		zap.String("model", t.modelName()),
		zap.Stringer("population", pop),
		zap.Int("columns", len(t.columns)),
		zap.Int("actions", len(actions)),
	)
	return nil
}

// Cell declares a column within a Declare block.
// Without a Value option the cell shows the attribute
// or the label of the association with the passed name.
func (t *TableBuilder) Cell(name string, options ...CellOption) {
	if !t.declaring {
		t.fail(fmt.Errorf("%w: %q", ErrCellOutsideData, name))
		return
	}
	t.columns = append(t.columns, t.newColumn(name, options...))
}

// Action declares an action link column within a Declare block.
func (t *TableBuilder) Action(action Action, prefix Prefix) {
	if !t.declaring {
		t.fail(fmt.Errorf("%w: %s action", ErrCellOutsideData, action))
		return
	}
	actions, err := ExpandActions(action)
	if err != nil {
		t.fail(err)
		return
	}
	for _, a := range actions {
		t.columns = append(t.columns, t.actionColumn(a, prefix))
	}
}

func (t *TableBuilder) modelName() string {
	if t.model == nil {
		return ""
	}
	return t.model.Name()
}

func (t *TableBuilder) newColumn(name string, options ...CellOption) *Column {
	column := &Column{
		Name:    name,
		Heading: Humanize(name),
		Value:   t.accessor(name),
	}
	if t.model != nil {
		column.Heading = humanAttributeName(t.model, name)
	}
	for _, opt := range options {
		opt(column)
	}
	return column
}

func (t *TableBuilder) accessor(name string) func(record any) (any, error) {
	if assoc, ok := findAssociation(t.model, name); ok {
		return func(record any) (any, error) {
			return t.associationLabel(assoc, record)
		}
	}
	return func(record any) (any, error) {
		if t.model == nil {
			return nil, fmt.Errorf("no model to read %q of %T", name, record)
		}
		return t.model.Value(record, name)
	}
}

func (t *TableBuilder) associationLabel(assoc Association, record any) (any, error) {
	related, err := t.model.Value(record, assoc.Name)
	if err != nil {
		return nil, err
	}
	if ValueIsNil(reflect.ValueOf(related)) {
		return nil, nil
	}
	return t.config.label(assoc, related), nil
}

// label returns the display text of an associated record.
func (c *Config) label(assoc Association, record any) string {
	if labeler, ok := assoc.Model.(Labeler); ok {
		if label, ok := labeler.Label(record); ok {
			return label
		}
	}
	if assoc.Model != nil {
		for _, field := range c.LabelFields {
			value, err := assoc.Model.Value(record, field)
			if err != nil {
				continue
			}
			if label := displayString(value); label != "" {
				return label
			}
		}
	}
	if stringer, ok := record.(fmt.Stringer); ok {
		return stringer.String()
	}

	c.logger().Debug("Labeling associated record by identity",
		zap.String("association", assoc.Name),
		zap.String("type", assoc.TypeName),
		zap.Error(ErrUnresolvableAssociation),
	)
	if assoc.Model != nil {
		if id, ok := assoc.Model.ID(record); ok {
			return displayString(id)
		}
	}
	return displayString(record)
}

func displayString(value any) string {
	val := reflect.ValueOf(value)
	if ValueIsNil(val) {
		return ""
	}
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return ""
		}
		val = val.Elem()
	}
	return fmt.Sprint(val.Interface())
}

func (t *TableBuilder) actionColumn(action Action, prefix Prefix) *Column {
	class := action.String() + "_link"
	if t.config.ActionCellClass != "" {
		class = t.config.ActionCellClass + " " + class
	}
	urls := t.config.urlBuilder()
	confirm := t.config.DestroyConfirm
	return &Column{
		Name:     action.String(),
		CellHTML: func(any) Attrs { return Attrs{"class": class} },
		Value: func(record any) (any, error) {
			link, err := BuildLink(t.model, record, action, prefix, urls)
			if err != nil {
				return nil, err
			}
			return link.HTML(confirm), nil
		},
	}
}
