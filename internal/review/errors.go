package review

import (
	"fmt"
)

// ValidationError describes a single malformed record. It is recorded
// and counted, never propagated as a batch failure.
type ValidationError struct {
	Reason string // one of the Drop* constants
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// ConfigurationError aborts a run before any processing: missing theme
// config, missing required input columns, empty batch.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Msg)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// PersistenceError is a fatal store failure (connection, migration,
// transaction). Per-row constraint violations are not wrapped in it;
// they are reported in the load result instead.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
