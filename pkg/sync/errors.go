package sync

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the reconciliation engine
var (
	// ErrInvalidRecord means the external record itself is absent
	ErrInvalidRecord = goerr.New("external record is missing")

	// ErrMissingRequiredField means a field the entity policy requires
	// (display name, identifier, principal name) is absent or empty
	ErrMissingRequiredField = goerr.New("required field is missing")

	// ErrMissingIdentifier means none of the recognized identifier key
	// spellings is present in the record
	ErrMissingIdentifier = goerr.New("external identifier is missing")
)

// Context keys for error values
const (
	FieldKey      = "field"
	RecordKeysKey = "record_keys"
	ExternalIDKey = "external_id"
)
