package eventlog

import "errors"

// Sentinel errors returned by the CSV/JSONL ingesters, matching the
// sentinel-error convention used throughout this module
// (discovery/errors.go, config/errors.go, projection/errors.go).
var (
	// ErrMissingColumn is returned when a CSVConfig omits one of the
	// required column names.
	ErrMissingColumn = errors.New("eventlog: required column name missing from config")
	// ErrColumnNotFound is returned when a configured column name has
	// no match in the CSV header row.
	ErrColumnNotFound = errors.New("eventlog: configured column not found in header")
	// ErrShortRecord is returned when a CSV row has fewer fields than
	// the header columns the config requires.
	ErrShortRecord = errors.New("eventlog: record has fewer columns than required")
	// ErrEmptyField is returned when a required CSV/JSONL field is
	// present but blank.
	ErrEmptyField = errors.New("eventlog: required field is empty")
	// ErrBadTimestamp is returned when a timestamp value matches none
	// of the configured formats.
	ErrBadTimestamp = errors.New("eventlog: timestamp does not match any configured format")

	// ErrMissingField is returned when a JSONLConfig omits one of the
	// required field names.
	ErrMissingField = errors.New("eventlog: required field name missing from config")
	// ErrMissingJSONKey is returned when a required field is absent
	// from a decoded JSON record.
	ErrMissingJSONKey = errors.New("eventlog: required field missing from record")
	// ErrBadJSONLine is returned when a JSONL line fails to decode.
	ErrBadJSONLine = errors.New("eventlog: line is not valid JSON")
	// ErrBadTimestampType is returned when a timestamp field decodes
	// to a JSON type this ingester doesn't know how to interpret.
	ErrBadTimestampType = errors.New("eventlog: timestamp field has an unsupported type")
)
