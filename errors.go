package tablefor

import "errors"

var (
	// ErrSchemaUnavailable is returned when automatic columns are requested
	// for a model that exposes neither schema columns nor a field map.
	// Declare the fields explicitly in that case.
	ErrSchemaUnavailable = errors.New("schema unavailable")

	// ErrInvalidActionKind is returned for an action outside
	// of show, edit, destroy and all.
	ErrInvalidActionKind = errors.New("invalid action kind")

	// ErrMixedRecordTypes is returned when a collection
	// holds records of different types.
	ErrMixedRecordTypes = errors.New("mixed record types")

	// ErrMissingIdentity is returned when an action link
	// is built for a record without identity.
	ErrMissingIdentity = errors.New("record has no identity")

	// ErrCellOutsideData is returned when TableBuilder.Cell
	// is called outside of a Declare block.
	ErrCellOutsideData = errors.New("cell declared outside of data block")

	// ErrDataDeclaredTwice is returned when TableBuilder.Data
	// is called more than once for the same table.
	ErrDataDeclaredTwice = errors.New("table data declared twice")

	// ErrNoHeader is returned for a string table
	// without a header row.
	ErrNoHeader = errors.New("table has no header row")

	// ErrUnresolvableAssociation is logged when the associated record
	// of an association cell has no human readable label.
	// The cell falls back to the identity of the record.
	ErrUnresolvableAssociation = errors.New("unresolvable association")
)
