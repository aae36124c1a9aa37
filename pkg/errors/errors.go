package errors

import (
	"errors"
	"fmt"
)

// ConfigurationError is returned when the runtime configuration forbids the
// requested operation, e.g. a cache miss while offline-only mode is enabled.
type ConfigurationError struct {
	msg string
}

func NewConfigurationError(msg string) *ConfigurationError {
	return &ConfigurationError{msg: msg}
}

func NewOfflineCacheMissError(cacheKey string) *ConfigurationError {
	return &ConfigurationError{
		msg: fmt.Sprintf("offline-only mode is enabled and no cached snapshot exists for key %s: run once online (or create snapshots) to populate the cache", cacheKey),
	}
}

func (e *ConfigurationError) Error() string {
	return e.msg
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError.
func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

// RowLimitExceededError is returned by query runners when a result holds more
// rows than the configured maximum.
type RowLimitExceededError struct {
	MaxRows int
}

func NewRowLimitExceededError(maxRows int) *RowLimitExceededError {
	return &RowLimitExceededError{MaxRows: maxRows}
}

func (e *RowLimitExceededError) Error() string {
	return fmt.Sprintf("query returned more than %d rows", e.MaxRows)
}

func IsRowLimitExceededError(err error) bool {
	var e *RowLimitExceededError
	return errors.As(err, &e)
}

// ResourceNotFoundError is returned when a named resource does not exist.
type ResourceNotFoundError struct {
	kind string
	id   string
}

func NewResourceNotFoundError(kind, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{kind: kind, id: id}
}

func NewSnapshotNotFoundError(cacheKey string) *ResourceNotFoundError {
	return NewResourceNotFoundError("snapshot", cacheKey)
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.kind, e.id)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// UnsupportedDriverError is returned when no query runner exists for a driver name.
type UnsupportedDriverError struct {
	Driver string
}

func NewUnsupportedDriverError(driver string) *UnsupportedDriverError {
	return &UnsupportedDriverError{Driver: driver}
}

func (e *UnsupportedDriverError) Error() string {
	return fmt.Sprintf("unsupported query driver %q (must be 'postgres' or 'duckdb')", e.Driver)
}
